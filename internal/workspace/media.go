package workspace

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/maheshrc27/creatorflow/internal/models"
	"github.com/maheshrc27/creatorflow/internal/service"
	"github.com/maheshrc27/creatorflow/internal/transfer"
)

// GenerateImage requests images for the selected post and appends each
// decodable payload to the session media set. A response with zero
// decodable images is its own failure, distinct from transport errors.
func (s *Store) GenerateImage(ctx context.Context, prompt string, n int) error {
	s.mu.Lock()
	if s.imageBusy {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.selectedID == NoSelection {
		s.mu.Unlock()
		return ErrNoSelection
	}
	postID := s.selectedID
	s.imageBusy = true
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.imageBusy = false
		s.mu.Unlock()
		s.notify()
	}()

	parts, err := s.genai.GenerateImages(ctx, prompt, n)
	if err != nil {
		s.appendAssistant(fmt.Sprintf("Image generation failed: %v", err))
		return nil
	}

	var files []*models.MediaFile
	for _, part := range parts {
		// Descriptive text parts are expected alongside images; skip them.
		if part.InlineData == nil {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
		if err != nil || len(data) == 0 {
			continue
		}
		files = append(files, newMediaFile(postID, models.MediaImage, part.InlineData.MimeType, data))
	}

	if len(files) == 0 {
		s.appendAssistant("Could not extract image data from the response.")
		return nil
	}

	s.mu.Lock()
	s.media = append(s.media, files...)
	s.mu.Unlock()
	s.notify()
	return nil
}

// GenerateVideo submits a long-running generation job and polls it on a
// fixed cadence, rewriting the trailing assistant message in place so
// progress doesn't flood the transcript. The poll loop is capped; once
// the cap is hit the job is abandoned and reported as a timeout.
func (s *Store) GenerateVideo(ctx context.Context, spec transfer.VideoJobSpec) error {
	s.mu.Lock()
	if s.videoBusy {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.selectedID == NoSelection {
		s.mu.Unlock()
		return ErrNoSelection
	}
	postID := s.selectedID
	s.videoBusy = true
	// Cadence is fixed for the duration of the run.
	interval, maxPolls := s.pollInterval, s.maxPolls
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.videoBusy = false
		s.mu.Unlock()
		s.notify()
	}()

	op, err := s.video.SubmitJob(ctx, spec)
	if err != nil {
		if errors.Is(err, service.ErrMissingAPIKey) {
			s.appendAssistant("Video generation needs an API key; none is configured.")
		} else {
			s.appendAssistant(fmt.Sprintf("Could not start video generation: %v", err))
		}
		return nil
	}

	s.appendAssistant("Generating video… 0s elapsed.")

	for i := 1; i <= maxPolls; i++ {
		select {
		case <-ctx.Done():
			s.replaceAssistant("Video generation was canceled.")
			return nil
		case <-time.After(interval):
		}

		done, uri, err := op.Poll(ctx)
		if err != nil {
			s.replaceAssistant(fmt.Sprintf("Video generation failed: %v", err))
			return nil
		}
		if done {
			if uri == "" {
				s.replaceAssistant("Video generation finished without a result payload.")
				return nil
			}
			data, err := s.video.Download(ctx, uri)
			if err != nil {
				s.replaceAssistant(fmt.Sprintf("Could not download the generated video: %v", err))
				return nil
			}

			s.mu.Lock()
			s.media = append(s.media, newMediaFile(postID, models.MediaVideo, "video/mp4", data))
			s.replaceLastAssistantLocked("Your video is ready.")
			s.mu.Unlock()
			s.notify()
			return nil
		}

		elapsed := time.Duration(i) * interval
		s.replaceAssistant(fmt.Sprintf("Generating video… %s elapsed.", formatElapsed(elapsed)))
	}

	timeout := time.Duration(maxPolls) * interval
	s.replaceAssistant(fmt.Sprintf("Video generation timed out after %s.", formatElapsed(timeout)))
	return nil
}

// ImageBusy reports whether an image generation run is in flight.
func (s *Store) ImageBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imageBusy
}

// VideoBusy reports whether a video generation run is in flight.
func (s *Store) VideoBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoBusy
}

func (s *Store) replaceAssistant(content string) {
	s.mu.Lock()
	s.replaceLastAssistantLocked(content)
	s.mu.Unlock()
	s.notify()
}

func newMediaFile(postID, mediaType, mimeType string, data []byte) *models.MediaFile {
	id := newID()
	if kind, err := filetype.Match(data); err == nil && kind.MIME.Value != "" {
		mimeType = kind.MIME.Value
	}
	if strings.HasPrefix(mimeType, "video/") {
		mediaType = models.MediaVideo
	} else if strings.HasPrefix(mimeType, "image/") {
		mediaType = models.MediaImage
	}
	return &models.MediaFile{
		ID:        id,
		PostID:    postID,
		Type:      mediaType,
		Preview:   "/api/media/" + id + "/raw",
		MimeType:  mimeType,
		Data:      data,
		CreatedAt: time.Now(),
	}
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

// Media returns snapshots of the session media records without their
// payloads.
func (s *Store) Media() []models.MediaFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MediaFile, 0, len(s.media))
	for _, m := range s.media {
		record := *m
		record.Data = nil
		out = append(out, record)
	}
	return out
}

// MediaPayload hands out the raw bytes for serving a preview.
func (s *Store) MediaPayload(id string) (data []byte, mimeType string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.media {
		if m.ID == id && !m.Released() {
			return m.Data, m.MimeType, true
		}
	}
	return nil, "", false
}

// RemoveMedia drops a media file and releases its buffer.
func (s *Store) RemoveMedia(id string) {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	for i, m := range s.media {
		if m.ID == id {
			m.Release()
			s.media = append(s.media[:i], s.media[i+1:]...)
			return
		}
	}
}

// SweepMedia releases and drops media older than maxAge. Run
// periodically so session buffers don't grow without bound.
func (s *Store) SweepMedia(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	kept := s.media[:0]
	released := 0
	for _, m := range s.media {
		if m.CreatedAt.Before(cutoff) {
			m.Release()
			released++
			continue
		}
		kept = append(kept, m)
	}
	s.media = kept
	return released
}

// EndSession releases every media buffer and clears the transcript.
func (s *Store) EndSession() {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	for _, m := range s.media {
		m.Release()
	}
	s.media = nil
	s.chat = nil
}
