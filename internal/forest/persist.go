package forest

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the fitted ensemble as a gob artifact, creating the
// target directory if needed.
func Save(f *Forest, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(f); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return nil
}

// Load reads a previously saved artifact. The returned Forest is never
// mutated after load.
func Load(path string) (*Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer file.Close()

	var f Forest
	if err := gob.NewDecoder(file).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("model artifact %s contains no trees", path)
	}
	return &f, nil
}
