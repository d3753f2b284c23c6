// Package ui provides the Bubble Tea TUI for the catalog.
package ui

import (
	"github.com/abelbrown/catalog/internal/catalog"
	"github.com/abelbrown/catalog/internal/controller"
)

// ItemsLoaded is sent when the controller's load finishes.
type ItemsLoaded struct {
	Result controller.LoadResult
}

// ThumbnailLoaded is sent when an item image has been rendered.
type ThumbnailLoaded struct {
	ID        catalog.ID
	Thumbnail string
	Err       error
}
