package format

import (
	"bufio"
	"fmt"
	"os"
)

// LoadLabelFile reads a label-mapping file: one label per line, in order.
// Blank trailing lines are dropped; interior blank lines are kept so label
// indices stay aligned with the file's line numbers.
func LoadLabelFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load label file: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		labels = append(labels, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load label file %q: %w", path, err)
	}
	for len(labels) > 0 && labels[len(labels)-1] == "" {
		labels = labels[:len(labels)-1]
	}
	return labels, nil
}
