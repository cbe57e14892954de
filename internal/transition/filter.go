package transition

import (
	"fmt"
	"strconv"
)

// Filter renders the transition as an ffmpeg filter chain for a single
// looped still of frameW×frameH. The chain preserves the frame size; it is
// empty for None. background is an ffmpeg colour used where the image does
// not cover the frame.
func (tr Transition) Filter(frameW, frameH, fps int, background string) string {
	d := formatSeconds(tr.Duration)
	switch tr.Kind {
	case None:
		return ""
	case Crossfade:
		if tr.Duration <= 0 {
			return ""
		}
		return fmt.Sprintf("fade=t=in:st=0:d=%s:color=%s", d, background)
	case SlideLeft:
		if tr.Duration <= 0 {
			return ""
		}
		// Image sits right of a background panel; the crop window walks onto it.
		return fmt.Sprintf("pad=w=%d:h=%d:x=%d:y=0:color=%s,crop=w=%d:h=%d:x='%d*min(t/%s\\,1)':y=0",
			2*frameW, frameH, frameW, background, frameW, frameH, frameW, d)
	case SlideRight:
		if tr.Duration <= 0 {
			return ""
		}
		return fmt.Sprintf("pad=w=%d:h=%d:x=0:y=0:color=%s,crop=w=%d:h=%d:x='%d*max(1-t/%s\\,0)':y=0",
			2*frameW, frameH, background, frameW, frameH, frameW, d)
	case ZoomIn:
		frames := 1
		if tr.Duration > 0 && fps > 0 {
			frames = int(tr.Duration*float64(fps) + 0.5)
			if frames < 1 {
				frames = 1
			}
		}
		return fmt.Sprintf("zoompan=z='1+%s*min(on/%d\\,1)':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=1:s=%dx%d:fps=%d",
			formatSeconds(ZoomFactor), frames, frameW, frameH, fps)
	}
	return ""
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
