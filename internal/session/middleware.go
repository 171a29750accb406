package session

import (
	"net/http"

	"myshop-be/internal/logger"
	"myshop-be/internal/transport"

	"go.uber.org/zap"
)

// Middleware loads the session, puts its cart on the request context and
// writes the cookie back before the first byte of the response when the
// cart changed.
func Middleware(store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := store.Load(r)

			ctx := logger.WithSessionID(r.Context(), sess.ID)
			ctx = transport.WithCart(ctx, sess.Cart)
			r = r.WithContext(ctx)

			sw := &saveOnWrite{ResponseWriter: w, store: store, sess: sess, r: r}
			next.ServeHTTP(sw, r)
			sw.commit()
		})
	}
}

type saveOnWrite struct {
	http.ResponseWriter
	store *Store
	sess  *Session
	r     *http.Request
	done  bool
}

func (w *saveOnWrite) commit() {
	if w.done {
		return
	}
	w.done = true
	if !w.sess.NeedsSave() {
		return
	}
	if err := w.store.Save(w.ResponseWriter, w.sess); err != nil {
		logger.FromCtx(w.r.Context()).Error("failed to save session", zap.Error(err))
	}
}

func (w *saveOnWrite) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *saveOnWrite) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *saveOnWrite) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
