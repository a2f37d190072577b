package commands

import (
	"fmt"
)

func (c *Commander) handleLoad(path string) (string, error) {
	c.loadProgress = 0
	c.SetLoadingProgress(0.2)

	if err := c.processor.Load(path); err != nil {
		return "", fmt.Errorf("failed to load file: %w", err)
	}

	c.SetLoadingProgress(0.6)

	metadata := c.processor.GetMetadata()
	c.currentTrack = &Track{
		Title:    metadata.Title,
		Artist:   metadata.Artist,
		Album:    metadata.Album,
		Duration: int(metadata.Duration.Seconds()),
	}
	c.player.SetDuration(metadata.Duration)

	c.SetLoadingProgress(1.0)
	c.mode = ModeTrack

	return fmt.Sprintf("Loaded file: %s\n%s", path, metadata), nil
}
