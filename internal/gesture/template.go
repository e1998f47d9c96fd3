package gesture

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"

	"github.com/ayusman/handsnap/internal/detector"
)

// DefaultTolerance is the summed landmark distance accepted by a TemplateClassifier.
const DefaultTolerance = 3.0

// TemplateClassifier matches hands against a reference pose recorded as
// normalized landmarks.
type TemplateClassifier struct {
	landmarks []detector.Point3D
	tolerance float64
}

// NewTemplateClassifier creates a classifier from normalized reference landmarks.
// A non-positive tolerance selects DefaultTolerance.
func NewTemplateClassifier(landmarks []detector.Point3D, tolerance float64) *TemplateClassifier {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &TemplateClassifier{
		landmarks: landmarks,
		tolerance: tolerance,
	}
}

// VSignTemplate returns a TemplateClassifier built from the bundled V sign preset.
func VSignTemplate(tolerance float64) *TemplateClassifier {
	preset := detector.VSignLandmarks()
	return NewTemplateClassifier(preset.Normalize().Points[:], tolerance)
}

// IsTarget implements Classifier.
func (c *TemplateClassifier) IsTarget(hand *detector.HandLandmarks) bool {
	d, ok := c.Distance(hand)
	return ok && d <= c.tolerance
}

// Distance returns the summed per-landmark distance between the normalized
// hand and the reference. ok is false when there is nothing to compare.
func (c *TemplateClassifier) Distance(hand *detector.HandLandmarks) (d float64, ok bool) {
	if hand == nil || len(c.landmarks) == 0 {
		return 0, false
	}

	normalized := hand.Normalize()
	return landmarkDistance(normalized.Points[:], c.landmarks), true
}

// landmarkDistance sums the Euclidean distances between corresponding points.
func landmarkDistance(a, b []detector.Point3D) float64 {
	n := min(len(a), len(b))

	var total float64
	for i := 0; i < n; i++ {
		total += floats.Distance(
			[]float64{a[i].X, a[i].Y, a[i].Z},
			[]float64{b[i].X, b[i].Y, b[i].Z},
			2,
		)
	}
	return total
}

// Sample is one recorded pose in a template file.
type Sample struct {
	Landmarks []detector.Point3D `json:"landmarks"`
	Timestamp int64              `json:"timestamp,omitempty"`
}

// AverageSamples normalizes every sample and averages them point by point.
func AverageSamples(samples []Sample) ([]detector.Point3D, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples provided")
	}

	sums := make([][]float64, detector.NumLandmarks)
	for i := range sums {
		sums[i] = make([]float64, 3)
	}

	for i, s := range samples {
		if len(s.Landmarks) != detector.NumLandmarks {
			return nil, fmt.Errorf("sample %d has %d landmarks, expected %d", i, len(s.Landmarks), detector.NumLandmarks)
		}

		var hand detector.HandLandmarks
		copy(hand.Points[:], s.Landmarks)
		normalized := hand.Normalize()

		for j, p := range normalized.Points {
			floats.Add(sums[j], []float64{p.X, p.Y, p.Z})
		}
	}

	n := float64(len(samples))
	averaged := make([]detector.Point3D, detector.NumLandmarks)
	for j, sum := range sums {
		floats.Scale(1/n, sum)
		averaged[j] = detector.Point3D{X: sum[0], Y: sum[1], Z: sum[2]}
	}

	return averaged, nil
}

// LoadTemplate reads a JSON array of samples and builds a TemplateClassifier
// from their average.
func LoadTemplate(path string, tolerance float64) (*TemplateClassifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}

	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	landmarks, err := AverageSamples(samples)
	if err != nil {
		return nil, fmt.Errorf("average template: %w", err)
	}

	return NewTemplateClassifier(landmarks, tolerance), nil
}
