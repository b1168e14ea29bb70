package jobs

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"reelforge/assets"
	"reelforge/config"
	"reelforge/render"
	"reelforge/subtitle"
)

// Renderer abstracts the render invocation so tests can fake it.
type Renderer interface {
	Render(ctx context.Context, req render.Request) error
}

// ArtifactUploader pushes a finished video to remote storage and returns
// its location.
type ArtifactUploader interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Submission carries the raw caller-supplied parameters for one render.
// Asset paths must already be staged on local disk.
type Submission struct {
	Images         []string
	Audio          string
	Transcript     string
	StartTimesRaw  string
	CaptionStyle   int
	BaseColor      string
	HighlightColor string
	PanZoom        bool
	Chromatic      bool
	MusicSelector  string
}

// Manager owns job identity, status transitions and the background render
// pipeline. It is the only writer for any record it created; readers poll
// the store concurrently without coordination.
type Manager struct {
	store    Store
	renderer Renderer
	library  *assets.Library
	uploader ArtifactUploader // nil = keep artifacts local only
	baseDir  string

	sem chan struct{}
	wg  sync.WaitGroup
}

// ManagerConfig wires a Manager's collaborators.
type ManagerConfig struct {
	Store         Store
	Renderer      Renderer
	Library       *assets.Library
	Uploader      ArtifactUploader
	BaseDir       string
	MaxConcurrent int
}

func NewManager(cfg ManagerConfig) *Manager {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = config.MaxConcurrentRenders
	}
	return &Manager{
		store:    cfg.Store,
		renderer: cfg.Renderer,
		library:  cfg.Library,
		uploader: cfg.Uploader,
		baseDir:  cfg.BaseDir,
		sem:      make(chan struct{}, maxConcurrent),
	}
}

// NewJob allocates a fresh job id and its working directory. Nothing is
// persisted until Submit.
func (m *Manager) NewJob() (id, workDir string, err error) {
	id = uuid.NewString()
	workDir = m.workDir(id)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create work dir: %w", err)
	}
	return id, workDir, nil
}

func (m *Manager) workDir(id string) string {
	return filepath.Join(m.baseDir, id)
}

// Submit validates the submission, persists the PENDING record and
// schedules the render. It returns before any heavy work begins; a
// validation failure means no job record was ever created.
func (m *Manager) Submit(ctx context.Context, id string, sub Submission) error {
	req, err := m.buildRequest(id, sub)
	if err != nil {
		return err
	}

	now := time.Now()
	job := &Job{ID: id, Status: StatusPending, Progress: 0, CreatedAt: now, UpdatedAt: now}
	if err := m.store.Save(ctx, job); err != nil {
		return fmt.Errorf("persist job %s: %w", id, err)
	}

	m.wg.Add(1)
	go m.process(id, req)
	return nil
}

// buildRequest turns raw submission fields into a staged render request,
// rejecting anything malformed before a job record exists.
func (m *Manager) buildRequest(id string, sub Submission) (render.Request, error) {
	if len(sub.Images) == 0 {
		return render.Request{}, fmt.Errorf("no images supplied")
	}
	if sub.Audio == "" {
		return render.Request{}, fmt.Errorf("no narration audio supplied")
	}

	style := subtitle.StyleID(sub.CaptionStyle)
	if _, err := subtitle.PresetFor(style); err != nil {
		return render.Request{}, err
	}

	starts, err := render.ParseStartTimes(sub.StartTimesRaw)
	if err != nil {
		return render.Request{}, err
	}

	musicPath, err := m.library.MusicPath(sub.MusicSelector)
	if err != nil {
		return render.Request{}, err
	}

	workDir := m.workDir(id)
	return render.Request{
		Images:         sub.Images,
		Audio:          sub.Audio,
		Transcript:     sub.Transcript,
		StartTimes:     starts,
		Style:          style,
		BaseColor:      sub.BaseColor,
		HighlightColor: sub.HighlightColor,
		PanZoom:        sub.PanZoom,
		Chromatic:      sub.Chromatic,
		MusicPath:      musicPath,
		WorkDir:        workDir,
		OutputPath:     filepath.Join(workDir, config.OutputFileName),
	}, nil
}

// process is the single background unit of work for one job. Every
// failure inside it becomes a FAILED record; nothing escapes unobserved.
func (m *Manager) process(id string, req render.Request) {
	defer m.wg.Done()

	m.sem <- struct{}{}
	defer func() { <-m.sem }()

	ctx := context.Background()
	if err := m.run(ctx, id, req); err != nil {
		log.Printf("job %s failed: %v", id, err)
		m.update(ctx, id, func(j *Job) {
			j.Status = StatusFailed
			j.Progress = 0
			j.Error = err.Error()
		})
	}
}

func (m *Manager) run(ctx context.Context, id string, req render.Request) error {
	m.update(ctx, id, func(j *Job) {
		j.Status = StatusProcessing
		j.Progress = 10
	})

	if err := m.library.StageFonts(req.WorkDir); err != nil {
		return err
	}
	m.update(ctx, id, func(j *Job) {
		j.Progress = 20
	})

	if err := m.renderer.Render(ctx, req); err != nil {
		return err
	}

	var artifactKey, artifactURL string
	if m.uploader != nil {
		key := id + ".mp4"
		url, err := m.uploader.Upload(ctx, req.OutputPath, key)
		if err != nil {
			log.Printf("job %s: artifact upload failed, keeping local copy: %v", id, err)
		} else {
			artifactKey, artifactURL = key, url
		}
	}

	m.update(ctx, id, func(j *Job) {
		j.Status = StatusCompleted
		j.Progress = 100
		j.VideoPath = req.OutputPath
		j.ArtifactKey = artifactKey
		j.ArtifactURL = artifactURL
	})
	log.Printf("job %s completed: %s", id, req.OutputPath)
	return nil
}

// update applies fn to the stored record and writes it back. Terminal
// records are never mutated; CreatedAt survives every update.
func (m *Manager) update(ctx context.Context, id string, fn func(*Job)) {
	job, err := m.store.Get(ctx, id)
	if err != nil {
		log.Printf("job %s: status read failed: %v", id, err)
		return
	}
	if job.Status.Terminal() {
		return
	}

	fn(job)
	job.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, job); err != nil {
		log.Printf("job %s: status write failed: %v", id, err)
	}
}

// Get returns the stored record for id.
func (m *Manager) Get(ctx context.Context, id string) (*Job, error) {
	return m.store.Get(ctx, id)
}

// Delete removes the job record, its working directory and any uploaded
// artifact. An in-flight render is not interrupted; its later status
// writes land on a missing record and are dropped.
func (m *Manager) Delete(ctx context.Context, id string) error {
	job, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(m.workDir(id)); err != nil {
		return fmt.Errorf("remove work dir for %s: %w", id, err)
	}
	if m.uploader != nil && job.ArtifactKey != "" {
		if err := m.uploader.Delete(ctx, job.ArtifactKey); err != nil {
			log.Printf("job %s: artifact delete failed: %v", id, err)
		}
	}
	return m.store.Delete(ctx, id)
}

// DiscardWorkDir removes a job's working directory after a rejected
// submission.
func (m *Manager) DiscardWorkDir(id string) {
	if err := os.RemoveAll(m.workDir(id)); err != nil {
		log.Printf("job %s: work dir cleanup failed: %v", id, err)
	}
}

// Wait blocks until all scheduled background work has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}
