package interfaces

import "github.com/m-mizutani/shipnote/pkg/domain/model"

// CloseKeywordParser finds close-keyword references in free text
type CloseKeywordParser interface {
	CloseActions(text string) []model.CloseAction
}
