package tutorial

import "context"

type Loader interface {
	LoadPacks(ctx context.Context, root string) ([]Pack, error)
}

// Board is the part of the grid the engine needs: it clears the frame between challenges and
// reads rows when checking an answer.
type Board interface {
	Clear()
	ResetCursor()
	Lines() []string
}
