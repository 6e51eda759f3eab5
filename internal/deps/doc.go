// Package deps resolves the external binaries vidscribe shells out to.
package deps
