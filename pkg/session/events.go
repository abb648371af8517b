package session

import (
	"github.com/Snyder005/govisa/pkg/driver"
	"github.com/Snyder005/govisa/pkg/event"
)

// InstallHandler registers cb to be invoked when eventType fires on
// this session, using handler-based delivery. The returned
// registration is the token for exact-match removal via
// UninstallHandler. Callbacks run on a driver-managed context; see the
// package documentation for the rules they must follow.
func (s *Session) InstallHandler(eventType driver.EventType, cb driver.EventCallback, userData any) (*event.Registration, error) {
	if cb == nil {
		return nil, event.ErrNilCallback
	}

	st := s.drv.InstallHandler(s.handle, eventType, cb, userData)
	if err := s.check("viInstallHandler", st); err != nil {
		s.traceError("viInstallHandler", "installing handler for "+eventType.String(), st)
		return nil, err
	}

	reg, err := s.registry.Install(eventType, cb, userData)
	if err != nil {
		return nil, err
	}

	s.traceHandler("viInstallHandler", eventType, "install", reg.Token, st)
	return reg, nil
}

// UninstallHandler removes a previously installed registration,
// passing the exact (event type, callback, user data) triple recorded
// at install time to the driver. If the native uninstall fails the
// registration stays in the registry; retrying is the caller's call.
func (s *Session) UninstallHandler(reg *event.Registration) error {
	if reg == nil {
		return event.ErrNotRegistered
	}

	st := s.drv.UninstallHandler(s.handle, reg.Type, reg.Callback, reg.UserData)
	if err := s.check("viUninstallHandler", st); err != nil {
		s.traceError("viUninstallHandler", "uninstalling handler for "+reg.Type.String(), st)
		return err
	}

	if err := s.registry.Remove(reg); err != nil {
		return err
	}

	s.traceHandler("viUninstallHandler", reg.Type, "uninstall", reg.Token, st)
	return nil
}

// EnableEvent enables handler-based delivery of eventType on this
// session. Installed callbacks may fire at any point afterward.
func (s *Session) EnableEvent(eventType driver.EventType) error {
	st := s.drv.EnableEvent(s.handle, eventType, driver.MechanismHandler)
	if err := s.check("viEnableEvent", st); err != nil {
		s.traceError("viEnableEvent", "enabling "+eventType.String(), st)
		return err
	}

	s.traceHandler("viEnableEvent", eventType, "enable", "", st)
	return nil
}

// DisableEvent disables handler-based delivery of eventType on this
// session. Installed handlers stay registered.
func (s *Session) DisableEvent(eventType driver.EventType) error {
	st := s.drv.DisableEvent(s.handle, eventType, driver.MechanismHandler)
	if err := s.check("viDisableEvent", st); err != nil {
		s.traceError("viDisableEvent", "disabling "+eventType.String(), st)
		return err
	}

	s.traceHandler("viDisableEvent", eventType, "disable", "", st)
	return nil
}

// DiscardEvents flushes pending, not-yet-delivered occurrences of
// eventType across all delivery mechanisms for this session.
func (s *Session) DiscardEvents(eventType driver.EventType) error {
	st := s.drv.DiscardEvents(s.handle, eventType, driver.MechanismAll)
	if err := s.check("viDiscardEvents", st); err != nil {
		s.traceError("viDiscardEvents", "discarding "+eventType.String(), st)
		return err
	}

	s.traceHandler("viDiscardEvents", eventType, "discard", "", st)
	return nil
}
