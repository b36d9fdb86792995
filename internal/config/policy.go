package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/KasumiMercury/primind-priority-board/internal/service/category"
)

// LoadTrainPolicy reads the YAML classification table at path. Fields left out
// of the file keep their built-in values, but a table given in the file
// replaces the built-in one. An empty path returns the defaults.
func LoadTrainPolicy(path string) (category.Policy, error) {
	policy := category.DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return category.Policy{}, fmt.Errorf("read train policy %s: %w", path, err)
	}

	return ParseTrainPolicy(raw)
}

func ParseTrainPolicy(raw []byte) (category.Policy, error) {
	var policy category.Policy
	if err := yaml.Unmarshal(raw, &policy); err != nil {
		return category.Policy{}, fmt.Errorf("%w: %w", ErrInvalidTrainPolicy, err)
	}
	policy = policy.WithDefaults()

	if err := validator.New().Struct(policy); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			joined := make([]error, 0, len(verrs))
			for _, fe := range verrs {
				joined = append(joined, fmt.Errorf("%s: failed %s", fe.Namespace(), fe.Tag()))
			}
			return category.Policy{}, fmt.Errorf("%w: %w", ErrInvalidTrainPolicy, errors.Join(joined...))
		}
		return category.Policy{}, fmt.Errorf("%w: %w", ErrInvalidTrainPolicy, err)
	}

	return policy, nil
}
