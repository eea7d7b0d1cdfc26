package plot

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind names a metric that gets its own panel.
type Kind string

const (
	KindLoss Kind = "loss"
	KindPSNR Kind = "psnr"
	KindSSIM Kind = "ssim"
)

// DefaultKinds is the fixed left-to-right panel order.
var DefaultKinds = []Kind{KindLoss, KindPSNR, KindSSIM}

var titleCaser = cases.Upper(language.Und)

// Title returns the panel heading for the kind.
func (k Kind) Title() string {
	return titleCaser.String(string(k))
}

// AxisLabels returns the x and y axis names used for the kind.
func (k Kind) AxisLabels() (x, y string) {
	switch k {
	case KindLoss:
		return "Training Step", "Loss"
	case KindPSNR:
		return "Epochs", "PSNR (dB)"
	case KindSSIM:
		return "Epochs", "SSIM"
	default:
		return "Step", titleCaser.String(string(k))
	}
}

// ParseKinds converts metric names into kinds, dropping blanks and duplicates.
func ParseKinds(names []string) []Kind {
	seen := make(map[Kind]struct{}, len(names))
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		k := Kind(name)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		kinds = append(kinds, k)
	}
	return kinds
}
