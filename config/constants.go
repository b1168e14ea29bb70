package config

import "time"

const (
	// Output canvas
	VideoWidth  = 1080
	VideoHeight = 1920
	VideoFPS    = 60
	VideoCodec  = "libx264"
	PixelFormat = "yuv420p"

	// Background music sits well under the narration
	MusicVolume = 0.10

	// Start times missing from a submission continue at this stride
	StartTimeStride = 3.0

	// Directory layout
	WorkDirName      = "temp_files"
	JobsDirName      = "jobs"
	OutputFileName   = "final_video.mp4"
	SubtitleFileName = "subtitles.ass"

	// Processing
	MaxImages            = 25
	MaxConcurrentRenders = 2
	DefaultRenderTimeout = 10 * time.Minute
)

// RequiredFonts are staged into each job's working directory so the
// subtitle filter can resolve them without a system-wide install.
var RequiredFonts = []string{
	"KOMIKAX_.ttf",
	"Montserrat-Black.ttf",
	"Montserrat-ExtraBold.ttf",
	"Prohibition-RoughOblique.ttf",
}

// BackgroundMusicMap maps the numeric music selector to a track in the
// asset directory. Selector "0" means no music.
var BackgroundMusicMap = map[string]string{
	"1": "tonight.mp3",
	"2": "stranger.mp3",
	"3": "i-was.mp3",
	"4": "suspense.mp3",
}
