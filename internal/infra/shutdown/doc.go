// Package shutdown provides graceful shutdown for featherserve.
//
// A Handler waits for SIGINT, SIGTERM or cancellation of a context, then
// runs the registered hooks in reverse registration order under a
// shared timeout:
//
//	h := shutdown.NewHandler(30 * time.Second)
//	h.OnShutdown(srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
