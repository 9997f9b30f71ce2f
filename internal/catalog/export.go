package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Export writes one "[CODE] Name" line per course in catalog order.
func Export(w io.Writer, c *Catalog) error {
	bw := bufio.NewWriter(w)
	for _, r := range c.records {
		if _, err := fmt.Fprintf(bw, "[%s] %s\n", r.Code, r.Name); err != nil {
			return fmt.Errorf("writing course dump: %w", err)
		}
	}
	return bw.Flush()
}

// ExportFile writes the course dump to path, replacing any existing file.
func ExportFile(path string, c *Catalog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating course dump: %w", err)
	}
	if err := Export(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
