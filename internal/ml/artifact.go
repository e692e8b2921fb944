package ml

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/4rnv/safebalance/internal/archetype"
)

// TreeNode is one node of a regression tree. Leaf nodes have Left < 0 and
// carry the prediction in Value; internal nodes route on
// features[Feature] <= Threshold.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a regression tree stored as a node array rooted at index 0.
type Tree []TreeNode

// Predict walks the tree for one feature vector and returns the leaf value.
func (t Tree) Predict(features []float64) (float64, error) {
	idx := 0
	for steps := 0; steps <= len(t); steps++ {
		if idx < 0 || idx >= len(t) {
			return 0, fmt.Errorf("node index %d out of range", idx)
		}
		node := t[idx]
		if node.Left < 0 {
			return node.Value, nil
		}
		if node.Feature < 0 || node.Feature >= len(features) {
			return 0, fmt.Errorf("feature index %d out of range", node.Feature)
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return 0, fmt.Errorf("tree walk did not terminate")
}

// Artifact bundles the trained ensemble with its label-encoder classes and
// the feature-column order the model was trained on.
type Artifact struct {
	Trees          []Tree
	Classes        []string
	FeatureColumns []string
}

// ArchetypeCode returns the encoder index for an archetype. Absence means the
// classifier and the trained encoder have skewed versions.
func (a *Artifact) ArchetypeCode(arch archetype.Archetype) (int, error) {
	for i, class := range a.Classes {
		if class == string(arch) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("archetype %q not in trained encoder classes", arch)
}

// LoadArtifact reads the three model resources: the serialized tree ensemble,
// the label-encoder class list and the feature-column configuration. All
// three must be present and mutually consistent.
func LoadArtifact(modelPath, encoderPath, configPath string) (*Artifact, error) {
	var trees []Tree
	if err := readJSON(modelPath, &trees); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	var encoder struct {
		Classes []string `json:"classes"`
	}
	if err := readJSON(encoderPath, &encoder); err != nil {
		return nil, fmt.Errorf("load encoder: %w", err)
	}

	var config struct {
		FeatureColumns []string `json:"feature_columns"`
	}
	if err := readJSON(configPath, &config); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	artifact := &Artifact{
		Trees:          trees,
		Classes:        encoder.Classes,
		FeatureColumns: config.FeatureColumns,
	}
	if err := artifact.validate(); err != nil {
		return nil, err
	}
	return artifact, nil
}

// validate checks the three resources against each other and against the
// engine's own contracts.
func (a *Artifact) validate() error {
	if len(a.Trees) == 0 {
		return fmt.Errorf("model has no estimators")
	}

	// Every archetype the classifier can produce must be encodable.
	for _, arch := range archetype.All() {
		if _, err := a.ArchetypeCode(arch); err != nil {
			return fmt.Errorf("encoder inconsistent with classifier: %w", err)
		}
	}

	// The trained column list must match the feature builder exactly.
	built := make(map[string]bool, len(FeatureNames()))
	for _, name := range FeatureNames() {
		built[name] = true
	}
	if len(a.FeatureColumns) != len(built) {
		return fmt.Errorf("model expects %d feature columns, builder produces %d",
			len(a.FeatureColumns), len(built))
	}
	for _, col := range a.FeatureColumns {
		if !built[col] {
			return fmt.Errorf("model feature column %q not produced by feature builder", col)
		}
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
