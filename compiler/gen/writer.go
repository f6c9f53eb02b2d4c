package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// DescriptorWriter writes one descriptor file per entity and the order
// manifest, in parallel.
type DescriptorWriter struct {
	graph   *Graph
	outDir  string
	format  Format
	workers int

	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks what was written.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
	// GenerationID is the id recorded in the order manifest.
	GenerationID string
}

// Manifest is the content of the order manifest.
type Manifest struct {
	GenerationID string   `json:"generationId" yaml:"generationId" msgpack:"generationId"`
	Model        string   `json:"model,omitempty" yaml:"model,omitempty" msgpack:"model,omitempty"`
	Editor       string   `json:"editor,omitempty" yaml:"editor,omitempty" msgpack:"editor,omitempty"`
	Backend      string   `json:"backend" yaml:"backend" msgpack:"backend"`
	Order        []string `json:"order" yaml:"order" msgpack:"order"`
}

// NewDescriptorWriter creates a writer for the entities of g, using the
// target directory and the format of its config.
func NewDescriptorWriter(g *Graph) *DescriptorWriter {
	workers := g.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	format := g.Format
	if format == "" {
		format = FormatJSON
	}
	return &DescriptorWriter{
		graph:   g,
		outDir:  g.Target,
		format:  format,
		workers: workers,
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *DescriptorWriter) WithWorkers(n int) *DescriptorWriter {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the generation metrics.
func (w *DescriptorWriter) Metrics() *WriterMetrics {
	return w.metrics
}

// WriteAll writes the descriptors and, when the manifest feature is
// enabled, the order manifest. Stale output of disabled features is
// removed first.
func (w *DescriptorWriter) WriteAll(ctx context.Context) error {
	if err := cleanupFeatures(w.graph.Config); err != nil {
		return NewGenerationError("cleanup", w.outDir, "remove disabled feature output", err)
	}
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return NewGenerationError("descriptor", w.outDir, "create output directory", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, e := range w.graph.Nodes {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.write("descriptor", e.FileName()+"."+w.format.Ext(), e)
			}
		})
	}
	if w.graph.HasFeature(FeatureOrderManifest.Name) {
		m := w.manifest()
		eg.Go(func() error {
			return w.write("manifest", manifestName(w.format), m)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	w.graph.logger().Info("descriptors written",
		"dir", w.outDir,
		"format", string(w.format),
		"files", w.metrics.FilesGenerated,
	)
	return nil
}

func (w *DescriptorWriter) manifest() *Manifest {
	id := uuid.NewString()
	w.metrics.GenerationID = id
	m := &Manifest{
		GenerationID: id,
		Backend:      w.graph.Backend,
		Order:        w.graph.OrderNames(),
	}
	if w.graph.Model != nil {
		m.Model = w.graph.Model.Name
		if w.graph.Model.Editor.Valid() {
			m.Editor = w.graph.Model.Editor.String()
		}
	}
	return m
}

func (w *DescriptorWriter) write(phase, name string, v any) error {
	buf, err := Encode(w.format, v)
	if err != nil {
		return NewGenerationError(phase, name, "encode", err)
	}
	path := filepath.Join(w.outDir, name)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return NewGenerationError(phase, name, "write", err)
	}
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(buf))
	w.mu.Unlock()
	return nil
}

// Encode serializes v in the given format.
func Encode(f Format, v any) ([]byte, error) {
	switch f {
	case FormatJSON:
		buf, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(buf, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatMsgpack:
		return msgpack.Marshal(v)
	default:
		return nil, NewConfigError("Format", string(f), "unsupported format")
	}
}

// decode parses data written in the given format into v.
func decode(f Format, data []byte, v any) error {
	switch f {
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatMsgpack:
		return msgpack.Unmarshal(data, v)
	default:
		return NewConfigError("Format", string(f), "unsupported format")
	}
}

func manifestName(f Format) string {
	return fmt.Sprintf("order.%s", f.Ext())
}
