// Package assets resolves fonts and background-music tracks from a
// read-only asset directory.
package assets

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"reelforge/config"
)

// Library is the read-only catalog of caption fonts and music tracks.
type Library struct {
	Dir string
}

// NewLibrary points at an asset directory. The directory is not validated
// up front; individual lookups report what is missing.
func NewLibrary(dir string) *Library {
	return &Library{Dir: dir}
}

// StageFonts copies the required caption fonts into a job's working
// directory so the subtitle filter can resolve them via fontsdir. A
// missing font is logged and skipped; a copy failure for a present font
// is an error.
func (l *Library) StageFonts(workDir string) error {
	for _, font := range config.RequiredFonts {
		src := filepath.Join(l.Dir, font)
		if _, err := os.Stat(src); err != nil {
			log.Printf("font %s not found in %s, skipping", font, l.Dir)
			continue
		}
		if err := copyFile(src, filepath.Join(workDir, font)); err != nil {
			return fmt.Errorf("stage font %s: %w", font, err)
		}
	}
	return nil
}

// MusicPath resolves the numeric selector to a track path. Selector "0"
// disables music; unknown selectors are rejected.
func (l *Library) MusicPath(selector string) (string, error) {
	if selector == "0" {
		return "", nil
	}
	name, ok := config.BackgroundMusicMap[selector]
	if !ok {
		return "", fmt.Errorf("invalid background music selector %q", selector)
	}
	return filepath.Join(l.Dir, name), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
