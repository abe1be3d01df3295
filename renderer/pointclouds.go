// SPDX-License-Identifier: GPL-2.0-or-later

package renderer

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"goglobe/async"
	"goglobe/conlog"
	"goglobe/downloader"
	"goglobe/event"
	"goglobe/frame"
	"goglobe/gpu"
	"goglobe/mesh"
	"goglobe/planet"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultCloudPriority = downloader.Medium
	defaultCloudTTL      = 30 * 24 * time.Hour
)

var sectorBoxColor = gpu.Color{R: 1, G: 1, B: 0, A: 1}

// MetadataListener learns about a point cloud once its metadata is parsed.
// It is called on the render thread.
type MetadataListener interface {
	OnMetadata(pointsCount int64, sector planet.Sector, minHeight, maxHeight float64)
}

type MetadataListenerFunc func(pointsCount int64, sector planet.Sector, minHeight, maxHeight float64)

func (f MetadataListenerFunc) OnMetadata(pointsCount int64, sector planet.Sector, minHeight, maxHeight float64) {
	f(pointsCount, sector, minHeight, maxHeight)
}

// PointCloud is one cloud of a PointCloudsRenderer. Its fields are only
// touched on the render thread.
type PointCloud struct {
	serverURL   string
	name        string
	priority    downloader.Priority
	ttl         time.Duration
	readExpired bool
	listener    MetadataListener

	owner     *PointCloudsRenderer
	requestID downloader.RequestID

	downloadingMetadata      bool
	parsingMetadata          bool
	errorDownloadingMetadata bool
	errorParsingMetadata     bool

	metadata *Metadata
	box      *mesh.IndexedMesh
}

func (pc *PointCloud) Name() string { return pc.name }

// MetadataURL is where the cloud metadata is downloaded from.
func (pc *PointCloud) MetadataURL() string {
	return strings.TrimSuffix(pc.serverURL, "/") + "/" + url.PathEscape(pc.name)
}

// Metadata returns nil until the metadata is parsed.
func (pc *PointCloud) Metadata() *Metadata { return pc.metadata }

// RenderState is Error once downloading or parsing failed. Errors are
// terminal, there is no retry.
func (pc *PointCloud) RenderState() RenderState {
	switch {
	case pc.errorDownloadingMetadata || pc.errorParsingMetadata:
		return Error
	case pc.downloadingMetadata || pc.parsingMetadata:
		return Busy
	}
	return Ready
}

func (pc *PointCloud) initialize(r *PointCloudsRenderer) {
	pc.downloadingMetadata = true
	r.log.Info("Downloading metadata for point cloud %q", pc.name)
	pc.requestID = r.downloader.Download(pc.MetadataURL(), pc.priority, pc.ttl, pc.readExpired,
		&metadataDownloadListener{pc: pc, runner: r.runner})
}

func (pc *PointCloud) errorDownloading(reason string) {
	pc.downloadingMetadata = false
	pc.errorDownloadingMetadata = true
	if pc.owner != nil {
		pc.owner.addError(fmt.Sprintf("Error %s metadata of %q from %s", reason, pc.name, pc.MetadataURL()))
	}
}

func (pc *PointCloud) downloadedMetadata(data []byte) {
	pc.downloadingMetadata = false
	if pc.owner == nil {
		return
	}
	pc.parsingMetadata = true
	pc.owner.runner.InvokeAsyncTask(&metadataParser{pc: pc, data: data})
}

func (pc *PointCloud) parsedMetadata(md *Metadata, err error) {
	pc.parsingMetadata = false
	if pc.owner == nil {
		return
	}
	if err != nil {
		pc.errorParsingMetadata = true
		pc.owner.addError(fmt.Sprintf("Error parsing metadata of %q: %v", pc.name, err))
		return
	}
	pc.metadata = md
	pc.owner.log.Info("Point cloud %q: %d points in %v", pc.name, md.PointsCount, md.Sector)
	if pc.listener != nil {
		pc.listener.OnMetadata(md.PointsCount, md.Sector, md.MinHeight, md.MaxHeight)
	}
	box, err := mesh.NewBoxWireframe(sectorCorners(pc.owner.planet, md), sectorBoxColor, 2)
	if err != nil {
		pc.owner.log.Warning("Can't create box for point cloud %q: %v", pc.name, err)
		return
	}
	pc.box = box
}

func (pc *PointCloud) render(rc *frame.RenderContext) {
	if pc.box == nil {
		return
	}
	if !pc.box.BoundingVolume().TouchesFrustum(rc.Camera.Frustum()) {
		return
	}
	pc.box.Render(rc, rc.Camera.State())
}

// detach cuts the cloud off its renderer. Late callbacks only update the
// cloud itself.
func (pc *PointCloud) detach() {
	if pc.downloadingMetadata {
		pc.owner.downloader.Cancel(pc.requestID)
	}
	if pc.box != nil {
		pc.box.Close()
		pc.box = nil
	}
	pc.owner = nil
}

func sectorCorners(p *planet.Planet, md *Metadata) [8]mgl64.Vec3 {
	var c [8]mgl64.Vec3
	for i := range c {
		g := planet.FromDegrees(md.Sector.Lower.Latitude, md.Sector.Lower.Longitude, md.MinHeight)
		if i&1 != 0 {
			g.Latitude = md.Sector.Upper.Latitude
		}
		if i&2 != 0 {
			g.Longitude = md.Sector.Upper.Longitude
		}
		if i&4 != 0 {
			g.Height = md.MaxHeight
		}
		c[i] = p.ToCartesian(g)
	}
	return c
}

// metadataDownloadListener runs on downloader goroutines and forwards every
// outcome to the render thread.
type metadataDownloadListener struct {
	pc     *PointCloud
	runner *async.Runner
}

func (l *metadataDownloadListener) OnDownload(u string, data []byte, expired bool) {
	l.runner.InvokeInRenderThread(func() { l.pc.downloadedMetadata(data) })
}

func (l *metadataDownloadListener) OnError(u string) {
	l.runner.InvokeInRenderThread(func() { l.pc.errorDownloading("downloading") })
}

func (l *metadataDownloadListener) OnCancel(u string) {
	l.runner.InvokeInRenderThread(func() { l.pc.errorDownloading("canceled downloading") })
}

func (l *metadataDownloadListener) OnCanceledDownload(u string, data []byte, expired bool) {
	l.runner.InvokeInRenderThread(func() { l.pc.errorDownloading("canceled downloading") })
}

type metadataParser struct {
	pc   *PointCloud
	data []byte
	md   *Metadata
	err  error
}

func (t *metadataParser) RunInBackground() {
	t.md, t.err = parseMetadata(t.data)
}

func (t *metadataParser) OnPostExecute() {
	t.pc.parsedMetadata(t.md, t.err)
}

// PointCloudsRenderer downloads point cloud metadata and shows the extent of
// every known cloud.
type PointCloudsRenderer struct {
	clouds []*PointCloud
	errors []string

	log        conlog.Logger
	planet     *planet.Planet
	downloader downloader.Downloader
	runner     *async.Runner
}

func NewPointClouds() *PointCloudsRenderer {
	return &PointCloudsRenderer{log: conlog.Nop()}
}

func (r *PointCloudsRenderer) initialized() bool {
	return r.downloader != nil
}

func (r *PointCloudsRenderer) Initialize(ic *frame.InitContext) {
	r.log = ic.Log
	r.planet = ic.Planet
	r.downloader = ic.Downloader
	r.runner = ic.Runner
	for _, pc := range r.clouds {
		pc.initialize(r)
	}
}

// AddPointCloud adds a cloud with medium priority, a thirty day cache and
// expired cache entries allowed.
func (r *PointCloudsRenderer) AddPointCloud(serverURL, cloudName string, l MetadataListener) *PointCloud {
	return r.AddPointCloudWith(serverURL, cloudName, defaultCloudPriority, defaultCloudTTL, true, l)
}

func (r *PointCloudsRenderer) AddPointCloudWith(serverURL, cloudName string, priority downloader.Priority, ttl time.Duration, readExpired bool, l MetadataListener) *PointCloud {
	pc := &PointCloud{
		serverURL:   serverURL,
		name:        cloudName,
		priority:    priority,
		ttl:         ttl,
		readExpired: readExpired,
		listener:    l,
		owner:       r,
	}
	r.clouds = append(r.clouds, pc)
	if r.initialized() {
		pc.initialize(r)
	}
	return pc
}

// RemoveAllPointClouds cancels pending downloads and forgets every cloud
// and error.
func (r *PointCloudsRenderer) RemoveAllPointClouds() {
	for _, pc := range r.clouds {
		pc.detach()
	}
	r.clouds = nil
	r.errors = nil
}

func (r *PointCloudsRenderer) Clouds() []*PointCloud { return slices.Clone(r.clouds) }
func (r *PointCloudsRenderer) Errors() []string      { return slices.Clone(r.errors) }

func (r *PointCloudsRenderer) addError(msg string) {
	r.log.Warning("%s", msg)
	r.errors = append(r.errors, msg)
}

func (r *PointCloudsRenderer) RenderState() RenderState {
	if len(r.errors) > 0 {
		return Error
	}
	for _, pc := range r.clouds {
		if s := pc.RenderState(); s != Ready {
			return s
		}
	}
	return Ready
}

func (r *PointCloudsRenderer) IsReadyToRender(rc *frame.RenderContext) bool {
	return r.RenderState() == Ready
}

func (r *PointCloudsRenderer) Render(rc *frame.RenderContext) int {
	for _, pc := range r.clouds {
		pc.render(rc)
	}
	return FrameHint
}

func (r *PointCloudsRenderer) OnTouchEvent(ec *frame.EventContext, e *event.TouchEvent) bool {
	return false
}

func (r *PointCloudsRenderer) OnResizeViewportEvent(ec *frame.EventContext, width, height int) {}

func (r *PointCloudsRenderer) Close() error {
	r.RemoveAllPointClouds()
	return nil
}

var _ Renderer = (*PointCloudsRenderer)(nil)
