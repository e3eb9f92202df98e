// Package http exposes the room booking services over a JSON API.
//
// Booking and availability endpoints are open to anonymous callers; room
// management endpoints require an admin session token issued by POST
// /sessions and presented as a Bearer token or session cookie.
package http
