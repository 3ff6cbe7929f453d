// Package viewstate tiene los holders de estado que consumen las pantallas:
// cada uno envuelve uno o más servicios y expone loading/error/datos.
// Todos son seguros para uso concurrente; los suscriptores se llaman fuera del lock.
package viewstate

import (
	"context"
	"errors"
	"sync"

	"epaw/internal/platform/httpclient"
	"epaw/internal/platform/logger"
)

// Status es lo común a todas las pantallas.
type Status struct {
	Loading      bool
	ErrorMessage string
	ShowError    bool
}

type state struct {
	mu     sync.Mutex
	st     Status
	subs   map[int]func()
	nextID int
	log    logger.Logger
}

func (s *state) setup(log logger.Logger, name string) {
	if log == nil {
		log = logger.NewNop()
	}
	s.log = log.With(map[string]any{"view": name})
}

// Subscribe registra fn para cada cambio. Devuelve la función para desuscribirse.
func (s *state) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = map[int]func(){}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *state) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// DismissError oculta el error pero conserva el mensaje.
func (s *state) DismissError() {
	s.update(func() { s.st.ShowError = false })
}

// update corre fn bajo el lock y después avisa a los suscriptores.
func (s *state) update(fn func()) {
	s.mu.Lock()
	fn()
	subs := make([]func(), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	s.mu.Unlock()

	for _, f := range subs {
		f()
	}
}

func (s *state) start() {
	s.update(func() {
		s.st.Loading = true
		s.st.ErrorMessage = ""
	})
}

// tryStart es start pero no hace nada si ya hay una carga en curso.
func (s *state) tryStart() bool {
	started := false
	s.update(func() {
		if s.st.Loading {
			return
		}
		started = true
		s.st.Loading = true
		s.st.ErrorMessage = ""
	})
	return started
}

func (s *state) done() {
	s.update(func() { s.st.Loading = false })
}

// fail termina la carga y muestra el error. Los datos previos no se tocan.
// Una cancelación no es un error para el usuario.
func (s *state) fail(err error, msg string) {
	if errors.Is(err, context.Canceled) {
		s.done()
		return
	}
	s.log.Warn(msg, map[string]any{"err": err})
	s.update(func() {
		s.st.Loading = false
		s.st.ErrorMessage = httpclient.Describe(err)
		s.st.ShowError = true
	})
}

// failWith muestra un mensaje local (validación) sin pasar por el server.
func (s *state) failWith(msg string) {
	s.update(func() {
		s.st.ErrorMessage = msg
		s.st.ShowError = true
	})
}
