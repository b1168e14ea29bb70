package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"reelforge/config"
	"reelforge/jobs"
)

const downloadFileName = "generated_video.mp4"

// RegisterJobRoutes registers the render job endpoints.
func RegisterJobRoutes(r *gin.Engine, m *jobs.Manager) {
	h := &jobsHandler{manager: m}
	r.GET("/", h.handleIndex)
	r.POST("/generate-video", h.handleGenerateVideo)
	r.GET("/job/:id", h.handleStatus)
	r.GET("/job/:id/download", h.handleDownload)
	r.DELETE("/job/:id", h.handleDelete)
}

type jobsHandler struct {
	manager *jobs.Manager
}

func (h *jobsHandler) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "reelforge",
		"endpoints": gin.H{
			"submit":   "POST /generate-video",
			"status":   "GET /job/:id",
			"download": "GET /job/:id/download",
			"delete":   "DELETE /job/:id",
		},
	})
}

// handleGenerateVideo accepts a multipart render submission and returns
// the job id immediately. The render runs in the background.
func (h *jobsHandler) handleGenerateVideo(c *gin.Context) {
	id, workDir, err := h.manager.NewJob()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.readSubmission(c, workDir)
	if err == nil {
		err = h.manager.Submit(c.Request.Context(), id, sub)
	}
	if err != nil {
		h.manager.DiscardWorkDir(id)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("accepted render submission as job %s (%d images)", id, len(sub.Images))
	c.JSON(http.StatusOK, gin.H{
		"job_id":  id,
		"status":  jobs.StatusPending,
		"message": "video generation started",
	})
}

// readSubmission pulls the form fields and saves the uploaded media into
// the job's working directory. Image parts are named image1..imageN and
// collected in order until the first gap.
func (h *jobsHandler) readSubmission(c *gin.Context, workDir string) (jobs.Submission, error) {
	var images []string
	for i := 1; i <= config.MaxImages; i++ {
		file, err := c.FormFile(fmt.Sprintf("image%d", i))
		if err != nil {
			break
		}
		dst := filepath.Join(workDir, fmt.Sprintf("image_%d%s", i, filepath.Ext(file.Filename)))
		if err := c.SaveUploadedFile(file, dst); err != nil {
			return jobs.Submission{}, fmt.Errorf("save image %d: %w", i, err)
		}
		images = append(images, dst)
	}
	if len(images) == 0 {
		return jobs.Submission{}, fmt.Errorf("at least one image is required")
	}

	audioFile, err := c.FormFile("audio")
	if err != nil {
		return jobs.Submission{}, fmt.Errorf("narration audio is required")
	}
	audioPath := filepath.Join(workDir, "audio"+filepath.Ext(audioFile.Filename))
	if err := c.SaveUploadedFile(audioFile, audioPath); err != nil {
		return jobs.Submission{}, fmt.Errorf("save audio: %w", err)
	}

	captionStyle := 1
	if v := c.PostForm("caption_number"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return jobs.Submission{}, fmt.Errorf("invalid caption_number %q", v)
		}
		captionStyle = n
	}

	return jobs.Submission{
		Images:         images,
		Audio:          audioPath,
		Transcript:     c.PostForm("subtitles_string"),
		StartTimesRaw:  c.PostForm("image_start_times"),
		CaptionStyle:   captionStyle,
		BaseColor:      c.PostForm("color_stt"),
		HighlightColor: c.PostForm("color_encours"),
		PanZoom:        parseFlag(c.PostForm("is_zoom_pan")),
		Chromatic:      parseFlag(c.PostForm("is_chromatic_effect")),
		MusicSelector:  c.PostForm("background_music"),
	}, nil
}

// parseFlag reads the form's oui/non toggles; anything but "oui" is off.
func parseFlag(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "oui")
}

// statusResponse is the job record plus a download link once the output
// file actually exists.
type statusResponse struct {
	jobs.Job
	VideoURL *string `json:"video_url"`
}

func (h *jobsHandler) handleStatus(c *gin.Context) {
	id := c.Param("id")
	job, err := h.manager.Get(c.Request.Context(), id)
	if err != nil {
		respondJobError(c, id, err)
		return
	}

	resp := statusResponse{Job: *job}
	if job.Status == jobs.StatusCompleted && job.VideoPath != "" {
		if _, err := os.Stat(job.VideoPath); err == nil {
			url := fmt.Sprintf("/job/%s/download", id)
			resp.VideoURL = &url
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *jobsHandler) handleDownload(c *gin.Context) {
	id := c.Param("id")
	job, err := h.manager.Get(c.Request.Context(), id)
	if err != nil {
		respondJobError(c, id, err)
		return
	}

	if job.Status != jobs.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "video is not ready",
			"status": job.Status,
		})
		return
	}
	if job.VideoPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "video file not found"})
		return
	}
	if _, err := os.Stat(job.VideoPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "video file not found"})
		return
	}

	c.FileAttachment(job.VideoPath, downloadFileName)
}

func (h *jobsHandler) handleDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.manager.Delete(c.Request.Context(), id); err != nil {
		respondJobError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("job %s deleted", id)})
}

func respondJobError(c *gin.Context, id string, err error) {
	if errors.Is(err, jobs.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("job %s not found", id)})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
