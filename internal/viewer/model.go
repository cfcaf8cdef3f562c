package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/mesh"
	"github.com/Faultbox/objviewer/internal/logger"
)

// maxLoggedDiagnostics caps per-component warnings for badly formed files.
const maxLoggedDiagnostics = 10

// SchemaFor builds the mesh schema described by a face layout string.
func SchemaFor(layout config.FaceLayout) (*mesh.Schema, error) {
	position, normal, texcoord, err := layout.Slots()
	if err != nil {
		return nil, err
	}
	return mesh.NewSchemaFromSlots(mesh.Slot(position), mesh.Slot(normal), mesh.Slot(texcoord))
}

// LoadModel reads the configured OBJ file and builds its mesh.
func LoadModel(cfg config.ModelConfig) (*mesh.Mesh, error) {
	schema, err := SchemaFor(cfg.FaceLayout)
	if err != nil {
		return nil, fmt.Errorf("face layout: %w", err)
	}

	start := time.Now()
	m, err := mesh.BuildFromFile(cfg.OBJPath, schema)
	if err != nil {
		return nil, err
	}

	b := m.Bounds()
	logger.Info("model loaded",
		zap.String("path", cfg.OBJPath),
		zap.String("layout", string(cfg.FaceLayout)),
		zap.Int("triangles", m.TriangleCount()),
		zap.Int("stride", m.Layout().Stride()),
		zap.Float32s("bounds_min", b.Min[:]),
		zap.Float32s("bounds_max", b.Max[:]),
		zap.Duration("elapsed", time.Since(start)),
	)

	logDiagnostics(m.Diagnostics())
	return m, nil
}

func logDiagnostics(diags []mesh.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	for i, d := range diags {
		if i == maxLoggedDiagnostics {
			break
		}
		logger.Warn("face index coerced",
			zap.Int("line", d.Line),
			zap.Stringer("channel", d.Channel),
			zap.String("component", d.Component),
			zap.Stringer("status", d.Status),
		)
	}
	if len(diags) > maxLoggedDiagnostics {
		logger.Warn("more face indices coerced", zap.Int("count", len(diags)-maxLoggedDiagnostics))
	}
}
