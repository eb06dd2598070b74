package ports

import (
	"context"

	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
)

// Notifier presenta el resultado de una evaluación al usuario.
type Notifier interface {
	// Notify muestra el report: opciones rankeadas por profit/área,
	// vista condensada y árbol de cadena.
	Notify(ctx context.Context, report *domain.Report) error
}
