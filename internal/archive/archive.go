// Package archive keeps a copy of every exported report in object storage.
package archive

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// Archiver stores exported report files.
type Archiver interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// ReportKey returns the object key of an exported report:
// informes/YYYY/MM/<id>/<filename>.
func ReportKey(now time.Time, id uuid.UUID, filename string) string {
	now = now.UTC()
	return path.Join("informes", fmt.Sprintf("%04d", now.Year()), fmt.Sprintf("%02d", int(now.Month())), id.String(), filename)
}
