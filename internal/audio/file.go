package audio

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// loadChunkSize is the read granularity for local and remote clips; small
// enough to keep the progress display moving on slow sources.
const loadChunkSize = 32 * 1024

func (p *Processor) loadFromFile(path string, cancelChan chan struct{}) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open error: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat error: %w", err)
	}

	data, err := p.readAll(file, info.Size(), "Loading clip", cancelChan)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (p *Processor) loadFromURL(url string, cancelChan chan struct{}) ([]byte, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	data, err := p.readAll(resp.Body, resp.ContentLength, "Downloading clip", cancelChan)
	if err != nil {
		return nil, fmt.Errorf("download error: %w", err)
	}
	return data, nil
}

// readAll drains r while publishing loading progress. totalSize may be
// negative when the source does not declare a length; progress and ETA are
// then omitted from the status.
func (p *Processor) readAll(r io.Reader, totalSize int64, verb string, cancelChan chan struct{}) ([]byte, error) {
	var data []byte
	if totalSize > 0 {
		data = make([]byte, 0, totalSize)
	}
	buf := make([]byte, loadChunkSize)
	var totalRead int64
	readStart := time.Now()

	for {
		select {
		case <-cancelChan:
			return nil, fmt.Errorf("cancelled")
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			totalRead += int64(n)
			p.reportLoadProgress(verb, readStart, totalRead, totalSize)
		}

		if err == io.EOF {
			return data, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read error: %w", err)
		}
	}
}

// reportLoadProgress publishes an ETA-annotated loading status snapshot.
func (p *Processor) reportLoadProgress(verb string, readStart time.Time, totalRead, totalSize int64) {
	status := ProcessingStatus{
		State:       StateLoading,
		Message:     fmt.Sprintf("%s...", verb),
		CanCancel:   true,
		StartTime:   readStart,
		BytesLoaded: totalRead,
	}

	elapsed := time.Since(readStart)
	if totalSize > 0 && elapsed > 0 {
		bytesPerSec := float64(totalRead) / elapsed.Seconds()
		eta := time.Duration(float64(totalSize-totalRead)/bytesPerSec) * time.Second
		status.Message = fmt.Sprintf("%s... (ETA: %s)", verb, formatETA(eta))
		status.Progress = float64(totalRead) / float64(totalSize)
		status.TotalBytes = totalSize
	}

	p.mu.Lock()
	p.status = status
	p.mu.Unlock()
}

func formatETA(d time.Duration) string {
	if d > 1*time.Hour {
		return fmt.Sprintf("%.1f hours", d.Hours())
	} else if d > 1*time.Minute {
		return fmt.Sprintf("%.1f minutes", d.Minutes())
	}
	return fmt.Sprintf("%.0f seconds", d.Seconds())
}
