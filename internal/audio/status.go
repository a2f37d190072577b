package audio

// setError drops the processor back to idle with a failure message. Used for
// load, decode, and analysis failures alike; the message names the stage.
func (p *Processor) setError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	logDebug("processing error: %s", msg)
	p.status = ProcessingStatus{
		State:   StateIdle,
		Message: msg,
	}
}

// setStatus moves the processor to a new state with a fresh message,
// discarding any previous progress.
func (p *Processor) setStatus(state ProcessingState, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	logDebug("status: [%v] %s", state, msg)
	p.status = ProcessingStatus{
		State:   state,
		Message: msg,
	}
}

// updateProgressWithMessage publishes a cancellable progress snapshot, used
// by the decode and analysis callbacks. Progress is clamped to [0, 1].
func (p *Processor) updateProgressWithMessage(state ProcessingState, msg string, progress float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	p.status = ProcessingStatus{
		State:     state,
		Message:   msg,
		Progress:  progress,
		CanCancel: true,
	}
}
