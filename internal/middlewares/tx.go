package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

const txFailedMessage = "Server error"

// TxMiddleware runs the handler inside a database transaction.
// The handler's response is held back until the transaction is resolved:
// a status below 400 commits, anything else rolls back. A failed commit
// replaces the response with a 500. Functions queued with AfterCommit run
// after a successful commit and before the response is written.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				log.Errorw("failed to begin transaction", "error", err)
				writeTxError(w)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					panic(rec)
				}
			}()

			hooks := &commitHooks{}
			ctx := setTxToContext(r.Context(), tx)
			ctx = context.WithValue(ctx, hooksKey{}, hooks)

			buf := &bufferedWriter{header: w.Header(), status: http.StatusOK}
			next.ServeHTTP(buf, r.WithContext(ctx))

			if buf.status >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					log.Errorw("failed to rollback transaction", "error", err)
				}
				buf.flush(w)
				return
			}

			if err := tx.Commit(); err != nil {
				log.Errorw("failed to commit transaction", "error", err)
				writeTxError(w)
				return
			}
			for _, fn := range hooks.fns {
				fn(r.Context())
			}
			buf.flush(w)
		})
	}
}

// bufferedWriter holds status and body until flush.
type bufferedWriter struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) WriteHeader(code int) {
	if b.wroteHeader {
		return
	}
	b.status = code
	b.wroteHeader = true
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	b.wroteHeader = true
	return b.body.Write(p)
}

func (b *bufferedWriter) flush(w http.ResponseWriter) {
	w.WriteHeader(b.status)
	w.Write(b.body.Bytes())
}

func writeTxError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(models.ErrorResponse{Success: false, Message: txFailedMessage})
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}

type hooksKey struct{}

type commitHooks struct {
	fns []func(context.Context)
}

// AfterCommit defers fn until the request's transaction commits. fn is
// dropped when the transaction rolls back. Outside TxMiddleware fn runs
// immediately.
func AfterCommit(ctx context.Context, fn func(context.Context)) {
	if hooks, ok := ctx.Value(hooksKey{}).(*commitHooks); ok {
		hooks.fns = append(hooks.fns, fn)
		return
	}
	fn(ctx)
}
