// Package metrics derives confusion-matrix statistics from labeled
// predictions. A metric whose denominator is zero is undefined, not
// zero and not an error.
package metrics

import (
	"fmt"
	"io"
)

// Confusion is the 2x2 matrix of prediction outcomes.
type Confusion struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	FN int `json:"fn"`
	TN int `json:"tn"`
}

// Count builds the matrix from ground-truth ID lists and the predicted
// positive set.
func Count(positives, negatives []string, predicted map[string]bool) Confusion {
	var c Confusion
	for _, id := range positives {
		if predicted[id] {
			c.TP++
		} else {
			c.FN++
		}
	}
	for _, id := range negatives {
		if predicted[id] {
			c.FP++
		} else {
			c.TN++
		}
	}
	return c
}

func (c Confusion) Total() int { return c.TP + c.FP + c.FN + c.TN }

// Metric is a score in [0,1], or undefined when its denominator was
// zero.
type Metric struct {
	Value   float64
	Defined bool
}

func ratio(num, den int) Metric {
	if den == 0 {
		return Metric{}
	}
	return Metric{Value: float64(num) / float64(den), Defined: true}
}

// String renders the metric to three decimals, or NA when undefined.
func (m Metric) String() string {
	if !m.Defined {
		return "NA"
	}
	return fmt.Sprintf("%.3f", m.Value)
}

// MarshalJSON emits null for undefined metrics.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%.6f", m.Value)), nil
}

func (c Confusion) Precision() Metric { return ratio(c.TP, c.TP+c.FP) }
func (c Confusion) Recall() Metric    { return ratio(c.TP, c.TP+c.FN) }
func (c Confusion) Accuracy() Metric  { return ratio(c.TP+c.TN, c.Total()) }

// F1 is the harmonic mean of precision and recall; undefined when
// either is undefined or when both are zero.
func (c Confusion) F1() Metric {
	p, r := c.Precision(), c.Recall()
	if !p.Defined || !r.Defined {
		return Metric{}
	}
	if p.Value+r.Value == 0 {
		return Metric{}
	}
	return Metric{Value: 2 * p.Value * r.Value / (p.Value + r.Value), Defined: true}
}

// Summary bundles the matrix with its derived statistics.
type Summary struct {
	Confusion Confusion `json:"confusion"`
	Precision Metric    `json:"precision"`
	Recall    Metric    `json:"recall"`
	F1        Metric    `json:"f1"`
	Accuracy  Metric    `json:"accuracy"`
}

func Summarize(c Confusion) Summary {
	return Summary{
		Confusion: c,
		Precision: c.Precision(),
		Recall:    c.Recall(),
		F1:        c.F1(),
		Accuracy:  c.Accuracy(),
	}
}

// WriteTSV prints the summary as a two-column table.
func (s Summary) WriteTSV(w io.Writer) error {
	rows := []struct {
		name  string
		value string
	}{
		{"tp", fmt.Sprint(s.Confusion.TP)},
		{"fp", fmt.Sprint(s.Confusion.FP)},
		{"fn", fmt.Sprint(s.Confusion.FN)},
		{"tn", fmt.Sprint(s.Confusion.TN)},
		{"precision", s.Precision.String()},
		{"recall", s.Recall.String()},
		{"f1", s.F1.String()},
		{"accuracy", s.Accuracy.String()},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r.name, r.value); err != nil {
			return err
		}
	}
	return nil
}
