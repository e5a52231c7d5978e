/*
Package ports defines the driven ports (interfaces) used by the eventgrid server.

These interfaces decouple the HTTP adapter from concrete backends, so rendered
documents can be cached in process or in Redis.

# Key Interfaces

  - DocumentCache: Stores rendered TextGrid documents by content key.
*/
package ports
