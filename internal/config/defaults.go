package config

const (
	defaultStateDir        = "~/.local/share/folio"
	defaultImagesInputDir  = "images"
	defaultImagesOutputDir = "optimized_images"
	defaultVideosInputDir  = "."
	defaultVideosOutputDir = "optimized_videos"
	defaultOutputPrefix    = "optimized_"
	defaultCanvasWidth     = 200
	defaultCanvasHeight    = 200
	defaultFFmpegBinary    = "ffmpeg"
	defaultCRF             = 23
	defaultPreset          = "medium"
	defaultAudioCodec      = "aac"
	defaultAudioBitrate    = "128k"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

var (
	defaultImageFiles = []string{
		"mlops_datacamp.png",
		"cloud_computing_datacamp.png",
		"deep_learning_coursera.png",
	}
	defaultVideoFiles = []string{
		"stock_prediction.mp4",
		"house_price.mp4",
		"face_recognition.mp4",
		"movie_recommendation.mp4",
	}
	defaultImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
	defaultVideoExtensions = []string{".mp4", ".mov", ".m4v", ".mkv", ".webm"}
)

// x264Presets lists the speed/compression presets libx264 accepts.
var x264Presets = []string{
	"ultrafast", "superfast", "veryfast", "faster", "fast",
	"medium", "slow", "slower", "veryslow", "placebo",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Images: Images{
			InputDir:   defaultImagesInputDir,
			OutputDir:  defaultImagesOutputDir,
			Prefix:     defaultOutputPrefix,
			Files:      cloneStrings(defaultImageFiles),
			Extensions: cloneStrings(defaultImageExtensions),
			Width:      defaultCanvasWidth,
			Height:     defaultCanvasHeight,
		},
		Videos: Videos{
			InputDir:     defaultVideosInputDir,
			OutputDir:    defaultVideosOutputDir,
			Prefix:       defaultOutputPrefix,
			Files:        cloneStrings(defaultVideoFiles),
			Extensions:   cloneStrings(defaultVideoExtensions),
			CRF:          defaultCRF,
			Preset:       defaultPreset,
			AudioCodec:   defaultAudioCodec,
			AudioBitrate: defaultAudioBitrate,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
