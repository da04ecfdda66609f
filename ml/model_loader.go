package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// Supported artifact types.
const (
	TypeLinear       = "linear"
	TypeTreeEnsemble = "tree_ensemble"
)

// LoadModel reads a serialized artifact of the given type from path. When
// the artifact names its columns they must equal features, in order.
func LoadModel(modelType, path string, features []string) (Regressor, error) {
	var model Regressor
	switch modelType {
	case TypeLinear:
		linear := &LinearModel{}
		if err := linear.Load(path); err != nil {
			return nil, err
		}
		model = linear
	case TypeTreeEnsemble:
		ensemble := &TreeEnsemble{}
		if err := ensemble.Load(path); err != nil {
			return nil, err
		}
		model = ensemble
	default:
		return nil, fmt.Errorf("unsupported model type %q", modelType)
	}
	if err := checkFeatureOrder(model.FeatureNames(), features); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return model, nil
}

func checkFeatureOrder(got, want []string) error {
	if len(got) == 0 || len(want) == 0 {
		return nil
	}
	if !slices.Equal(got, want) {
		return fmt.Errorf("%w: artifact has %v, expected %v", ErrFeatureOrder, got, want)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model %s: %w", path, err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode model %s: %w", path, err)
	}
	return nil
}
