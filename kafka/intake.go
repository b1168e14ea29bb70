package kafka

import (
	"context"
	"log"

	"reelforge/jobs"
)

// Request is the wire format for a queued render. Image and audio fields
// reference files already staged on disk shared with this service.
type Request struct {
	Images          []string `json:"images"`
	Audio           string   `json:"audio"`
	Transcript      string   `json:"subtitles_string"`
	ImageStartTimes string   `json:"image_start_times"`
	CaptionStyle    int      `json:"caption_number"`
	BaseColor       string   `json:"color_stt"`
	HighlightColor  string   `json:"color_encours"`
	ZoomPan         bool     `json:"zoom_pan"`
	ChromaticEffect bool     `json:"chromatic_effect"`
	BackgroundMusic string   `json:"background_music"`
}

// NewIntakeHandler returns a handler that turns queued render requests
// into jobs on the manager. Malformed requests are logged and marked so
// they are not redelivered forever.
func NewIntakeHandler(m *jobs.Manager) MessageHandler {
	return &TypedMessageHandler[Request]{
		AlwaysMark: true,
		Validate: func(msg *Request) bool {
			if len(msg.Images) == 0 || msg.Audio == "" {
				log.Printf("dropping render request without images or audio")
				return false
			}
			return true
		},
		Process: func(ctx context.Context, msg *Request) error {
			id, _, err := m.NewJob()
			if err != nil {
				return err
			}

			err = m.Submit(ctx, id, jobs.Submission{
				Images:         msg.Images,
				Audio:          msg.Audio,
				Transcript:     msg.Transcript,
				StartTimesRaw:  msg.ImageStartTimes,
				CaptionStyle:   msg.CaptionStyle,
				BaseColor:      msg.BaseColor,
				HighlightColor: msg.HighlightColor,
				PanZoom:        msg.ZoomPan,
				Chromatic:      msg.ChromaticEffect,
				MusicSelector:  msg.BackgroundMusic,
			})
			if err != nil {
				m.DiscardWorkDir(id)
				log.Printf("rejecting queued render request: %v", err)
				return nil
			}

			log.Printf("queued render accepted as job %s", id)
			return nil
		},
	}
}
