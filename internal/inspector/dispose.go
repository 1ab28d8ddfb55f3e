package inspector

import (
	"github.com/muurk/propsheet/internal/logging"
	"go.uber.org/zap"
)

// PopupDisplayed records that an editor opened a popup. The host's
// OnPopupDisplayed fires when the first popup opens.
func (s *Surface) PopupDisplayed() {
	in := s.shared
	in.popups++
	if in.popups == 1 && in.opts.OnPopupDisplayed != nil {
		in.opts.OnPopupDisplayed()
	}
}

// PopupHidden records that an editor closed a popup. The host's OnPopupHidden
// fires when the last one closes. Unbalanced calls are clamped at zero.
func (s *Surface) PopupHidden() {
	in := s.shared
	if in.popups <= 0 {
		in.popups = 0
		logging.Warn("Popup hidden without a matching display", zap.String("instance_id", in.id))
		return
	}
	in.popups--
	if in.popups == 0 && in.opts.OnPopupHidden != nil {
		in.opts.OnPopupHidden()
	}
}

// OpenPopups returns the number of popups currently open.
func (s *Surface) OpenPopups() int {
	return s.shared.popups
}

// Dispose tears the surface down: change handlers first, then popups, editors
// (and with them every nested surface), rows, and finally external editors.
// Further mutations return ErrDisposed. Dispose is idempotent.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	in := s.shared

	// Handlers
	s.onChange = nil
	if s.IsRoot() {
		in.opts.OnChange = nil
	}

	// Controls
	if s.IsRoot() && in.popups > 0 {
		in.popups = 0
		if in.opts.OnPopupHidden != nil {
			in.opts.OnPopupHidden()
		}
	}

	// Editors
	for _, editor := range s.editors {
		editor.Dispose()
	}
	for _, child := range s.Children() {
		child.Dispose()
	}

	// Elements
	for _, row := range s.ownRows {
		s.container.Remove(row)
	}
	s.ownRows = nil

	// External editors
	for _, ext := range s.external {
		ext.Dispose()
	}

	for _, id := range s.createdGroups {
		in.groups.ReleaseGroup(id)
	}
	if s.IsRoot() {
		in.groups.ReleaseGroup(s.group.ID)
		in.opts.OnPopupDisplayed = nil
		in.opts.OnPopupHidden = nil
	}
	delete(in.surfaces, s.id)
}
