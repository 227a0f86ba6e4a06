/*
Package logger provides logging functionality to a switchback app by defining the required behavior in [Logger]
and providing an implementation of it with [SwitchbackLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, if [SwitchbackLogger] is initialized with [LogLevelWarn],
only [*SwitchbackLogger.Warn], [*SwitchbackLogger.Error], and [*SwitchbackLogger.Fatal] produce messages.

# SwitchbackLogger

Log messages emitted by [SwitchbackLogger] are composed of a timestamp, a log level,
the call site, the message and, when provided, a log context.

Here's an example:

	2026/04/28 15:55:21 [WARN] switchback/guard/pipeline.go:88 'guard denied' log_context: {"path":"/admin","route":"admin"}

The log context is a JSON-encoded [LogContext].
It carries data inessential to the message proper, such as the path being resolved
or the route pattern whose guard ran.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.
*/
package logger
