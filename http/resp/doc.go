/*
Package resp provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides four ways of responding to an HTTP request:
  - rendering HTML templates, including the Vue application shell
  - rendering JSON data
  - redirecting
  - erroring
*/
package resp
