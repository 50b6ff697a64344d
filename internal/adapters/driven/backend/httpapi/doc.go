// Package httpapi implements driven.Backend against the storesync HTTP
// service: GET / for activity, POST /api/save/ to fetch orders and
// POST /api/sync/ to sync them.
package httpapi
