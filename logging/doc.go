// Package logging provides level-name based logger setup on top of glog,
// plus secret-masking and map-redaction helpers so credentials never reach
// log output.
package logging
