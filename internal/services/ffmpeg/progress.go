package ffmpeg

import (
	"strconv"
	"strings"
	"time"
)

// ProgressUpdate captures one progress block emitted by "-progress pipe:1".
type ProgressUpdate struct {
	Frame   int64
	FPS     float64
	OutTime time.Duration
	Speed   string
	Percent float64
	Done    bool
}

// progressParser accumulates key=value lines until a "progress=" line
// terminates the block. ffmpeg repeats every field per block, so carrying
// values across blocks also tolerates fields it occasionally omits.
type progressParser struct {
	target  float64
	current ProgressUpdate
}

func (p *progressParser) ingest(line string) (ProgressUpdate, bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found {
		return ProgressUpdate{}, false
	}
	value = strings.TrimSpace(value)

	switch key {
	case "frame":
		if frame, err := strconv.ParseInt(value, 10, 64); err == nil {
			p.current.Frame = frame
		}
	case "fps":
		if fps, err := strconv.ParseFloat(value, 64); err == nil {
			p.current.FPS = fps
		}
	case "out_time_us", "out_time_ms":
		// out_time_ms is historically microseconds as well.
		if us, err := strconv.ParseInt(value, 10, 64); err == nil && us >= 0 {
			p.current.OutTime = time.Duration(us) * time.Microsecond
		}
	case "out_time":
		if clock, ok := parseClock(value); ok {
			p.current.OutTime = clock
		}
	case "speed":
		p.current.Speed = value
	case "progress":
		update := p.current
		update.Done = value == "end"
		if p.target > 0 {
			percent := update.OutTime.Seconds() / p.target * 100
			if percent < 0 {
				percent = 0
			}
			if percent > 100 {
				percent = 100
			}
			update.Percent = percent
		}
		if update.Done {
			update.Percent = 100
		}
		return update, true
	}
	return ProgressUpdate{}, false
}

// parseClock parses ffmpeg's HH:MM:SS.micros timestamps.
func parseClock(value string) (time.Duration, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, false
	}
	total := float64(hours*3600+minutes*60) + seconds
	if total < 0 {
		return 0, false
	}
	return time.Duration(total * float64(time.Second)), true
}
