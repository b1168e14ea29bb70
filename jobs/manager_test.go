package jobs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"reelforge/assets"
	"reelforge/render"
)

type fakeRenderer struct {
	mu   sync.Mutex
	err  error
	reqs []render.Request
}

func (f *fakeRenderer) Render(ctx context.Context, req render.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(req.OutputPath, []byte("mp4"), 0o644)
}

type fakeUploader struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
	err      error
}

func (f *fakeUploader) Upload(ctx context.Context, localPath, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = append(f.uploaded, key)
	return "s3://bucket/" + key, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

func newTestManager(t *testing.T, renderer Renderer, uploader ArtifactUploader) *Manager {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	return NewManager(ManagerConfig{
		Store:         store,
		Renderer:      renderer,
		Library:       assets.NewLibrary(t.TempDir()),
		Uploader:      uploader,
		BaseDir:       t.TempDir(),
		MaxConcurrent: 2,
	})
}

func validSubmission(workDir string) Submission {
	return Submission{
		Images:        []string{filepath.Join(workDir, "image_1.png")},
		Audio:         filepath.Join(workDir, "audio.mp3"),
		Transcript:    "hi/0.0/there/0.5",
		CaptionStyle:  1,
		MusicSelector: "0",
	}
}

func TestSubmitRunsJobToCompletion(t *testing.T) {
	renderer := &fakeRenderer{}
	m := newTestManager(t, renderer, nil)
	ctx := context.Background()

	id, workDir, err := m.NewJob()
	if err != nil {
		t.Fatalf("NewJob returned error: %v", err)
	}
	if err := m.Submit(ctx, id, validSubmission(workDir)); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	m.Wait()

	job, err := m.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%s)", job.Status, job.Error)
	}
	if job.Progress != 100 {
		t.Errorf("expected progress 100, got %d", job.Progress)
	}
	if job.VideoPath != filepath.Join(workDir, "final_video.mp4") {
		t.Errorf("unexpected video path %q", job.VideoPath)
	}
	if len(renderer.reqs) != 1 {
		t.Fatalf("expected 1 render, got %d", len(renderer.reqs))
	}
	if job.CreatedAt.IsZero() || job.UpdatedAt.Before(job.CreatedAt) {
		t.Errorf("timestamps not maintained: created=%v updated=%v", job.CreatedAt, job.UpdatedAt)
	}
}

func TestSubmitRecordsRenderFailure(t *testing.T) {
	renderer := &fakeRenderer{err: fmt.Errorf("ffmpeg failed: exit status 1")}
	m := newTestManager(t, renderer, nil)
	ctx := context.Background()

	id, workDir, _ := m.NewJob()
	if err := m.Submit(ctx, id, validSubmission(workDir)); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	m.Wait()

	job, err := m.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if job.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", job.Status)
	}
	if job.Progress != 0 {
		t.Errorf("expected progress reset to 0, got %d", job.Progress)
	}
	if job.Error != "ffmpeg failed: exit status 1" {
		t.Errorf("error not preserved verbatim: %q", job.Error)
	}
}

func TestSubmitRejectsInvalidSubmission(t *testing.T) {
	m := newTestManager(t, &fakeRenderer{}, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*Submission)
	}{
		{"no images", func(s *Submission) { s.Images = nil }},
		{"no audio", func(s *Submission) { s.Audio = "" }},
		{"bad style", func(s *Submission) { s.CaptionStyle = 99 }},
		{"bad start times", func(s *Submission) { s.StartTimesRaw = "0 two" }},
		{"bad music", func(s *Submission) { s.MusicSelector = "9" }},
	}
	for _, tc := range cases {
		id, workDir, _ := m.NewJob()
		sub := validSubmission(workDir)
		tc.mutate(&sub)

		if err := m.Submit(ctx, id, sub); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		if _, err := m.Get(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: rejected submission left a job record", tc.name)
		}
	}
}

func TestCompletedJobUploadsArtifact(t *testing.T) {
	uploader := &fakeUploader{}
	m := newTestManager(t, &fakeRenderer{}, uploader)
	ctx := context.Background()

	id, workDir, _ := m.NewJob()
	if err := m.Submit(ctx, id, validSubmission(workDir)); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	m.Wait()

	job, _ := m.Get(ctx, id)
	if job.ArtifactKey != id+".mp4" {
		t.Errorf("unexpected artifact key %q", job.ArtifactKey)
	}
	if job.ArtifactURL != "s3://bucket/"+id+".mp4" {
		t.Errorf("unexpected artifact url %q", job.ArtifactURL)
	}
}

func TestUploadFailureKeepsJobCompleted(t *testing.T) {
	uploader := &fakeUploader{err: fmt.Errorf("bucket gone")}
	m := newTestManager(t, &fakeRenderer{}, uploader)
	ctx := context.Background()

	id, workDir, _ := m.NewJob()
	m.Submit(ctx, id, validSubmission(workDir))
	m.Wait()

	job, _ := m.Get(ctx, id)
	if job.Status != StatusCompleted {
		t.Fatalf("upload failure must not fail the job, got %s", job.Status)
	}
	if job.ArtifactKey != "" || job.ArtifactURL != "" {
		t.Errorf("artifact fields set despite failed upload: %+v", job)
	}
}

func TestUpdateNeverMutatesTerminalRecords(t *testing.T) {
	m := newTestManager(t, &fakeRenderer{}, nil)
	ctx := context.Background()

	created := time.Now().Add(-time.Hour)
	m.store.Save(ctx, &Job{ID: "done", Status: StatusCompleted, Progress: 100, CreatedAt: created})

	m.update(ctx, "done", func(j *Job) {
		j.Status = StatusFailed
		j.Progress = 0
	})

	job, _ := m.Get(ctx, "done")
	if job.Status != StatusCompleted || job.Progress != 100 {
		t.Errorf("terminal record mutated: %+v", job)
	}
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	m := newTestManager(t, &fakeRenderer{}, nil)
	ctx := context.Background()

	created := time.Now().Add(-time.Hour).Truncate(time.Second)
	m.store.Save(ctx, &Job{ID: "x", Status: StatusPending, CreatedAt: created, UpdatedAt: created})

	m.update(ctx, "x", func(j *Job) {
		j.Status = StatusProcessing
		j.Progress = 10
	})

	job, _ := m.Get(ctx, "x")
	if !job.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed: %v vs %v", job.CreatedAt, created)
	}
	if !job.UpdatedAt.After(created) {
		t.Errorf("UpdatedAt not advanced: %v", job.UpdatedAt)
	}
}

func TestDeleteRemovesEverything(t *testing.T) {
	uploader := &fakeUploader{}
	m := newTestManager(t, &fakeRenderer{}, uploader)
	ctx := context.Background()

	id, workDir, _ := m.NewJob()
	m.Submit(ctx, id, validSubmission(workDir))
	m.Wait()

	if err := m.Delete(ctx, id); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := m.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("record survives deletion: %v", err)
	}
	if _, err := os.Stat(workDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("work dir survives deletion")
	}
	if len(uploader.deleted) != 1 || uploader.deleted[0] != id+".mp4" {
		t.Errorf("artifact not deleted: %v", uploader.deleted)
	}
}

func TestDeleteUnknownJob(t *testing.T) {
	m := newTestManager(t, &fakeRenderer{}, nil)
	if err := m.Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
