/*
The middleware package defines what a middleware is in switchback and a set of basic middlewares.

The available middlewares are:
- CORS
- CurrentSubject
- ForceHTTPS
- InjectIPAddress
- InjectPartial
- InjectSession
- LogRequest
- RateLimit
- ReportPanic
- RequestID

ranger assembles these into its default chain.
Without ranger, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.InjectPartial(),
		middleware.LogRequest(log),
		middleware.InjectSession(sessionStore),
		middleware.CurrentSubject(),
	}
*/
package middleware
