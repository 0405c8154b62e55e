package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/orhun/manga-tui/internal/config"
	"github.com/orhun/manga-tui/internal/debuglog"
)

// Opener hands cover images to an external viewer.
type Opener struct {
	imageViewer   string
	defaultOpener string
	registry      *ViewerRegistry
}

func NewOpener(cfg *config.Config) *Opener {
	registry, err := NewViewerRegistry()
	if err != nil {
		// Continue without viewer metadata if definitions can't be parsed.
		registry = &ViewerRegistry{viewers: make(map[string]ViewerDefinition)}
	}

	defaultOpener := cfg.Media.DefaultOpener
	if defaultOpener == "" {
		defaultOpener = fallbackOpener()
	}

	var viewers config.MediaViewers
	switch runtime.GOOS {
	case "darwin":
		viewers = cfg.Media.Darwin
	case "linux":
		viewers = cfg.Media.Linux
	case "windows":
		viewers = cfg.Media.Windows
	default:
		viewers = cfg.Media.Linux
	}

	o := &Opener{
		defaultOpener: defaultOpener,
		registry:      registry,
	}

	if len(viewers.Image) > 0 {
		o.imageViewer = findCommand(viewers.Image...)
	}
	if o.imageViewer == "" {
		o.imageViewer = o.defaultOpener
	}

	return o
}

// OpenCover writes the raw cover bytes to a temp file and opens it with
// the configured viewer. The viewer process is detached; cleanup of the
// temp file is left to the OS.
func (o *Opener) OpenCover(data []byte, fileName string) error {
	if len(data) == 0 {
		return fmt.Errorf("no cover data to open")
	}
	if o.imageViewer == "" {
		return fmt.Errorf("no image viewer available")
	}

	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = ".jpg"
	}

	tmp, err := os.CreateTemp("", "manga-tui-cover-*"+ext)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing cover: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing cover file: %w", err)
	}

	args := append(o.registry.Flags(o.imageViewer), tmp.Name())
	cmd := exec.Command(o.imageViewer, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting viewer %s: %w", o.imageViewer, err)
	}

	debuglog.Infof("opened cover %s with %s", fileName, o.imageViewer)

	// Detach; the viewer outlives us and we never wait on it.
	go func() { _ = cmd.Wait() }()

	return nil
}

func findCommand(candidates ...string) string {
	for _, candidate := range candidates {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func fallbackOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "start"
	default:
		return "xdg-open"
	}
}
