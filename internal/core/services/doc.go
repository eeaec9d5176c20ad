// Package services implements the driving port interfaces.
// Services contain the core logic: they turn the driven provider ports
// into streams, compose those streams into pipelines, and bind the
// pipelines to a screen's activation window.
//
// Services depend only on domain, ports, the stream engine and logger.
package services
