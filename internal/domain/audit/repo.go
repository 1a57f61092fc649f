package audit

import "context"

type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	Search(ctx context.Context, filter Filter, limit, offset int) ([]*Entry, int, error)
}
