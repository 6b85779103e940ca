/*
Package ofx is a client for the OFX (Open Financial Exchange) protocol.

It builds request envelopes, negotiates the quirky empty-body/Set-Cookie
handshake some institutions require, and parses the loosely structured
SGML/XML responses into typed accounts, statements, transactions,
investment positions and securities.

OFX data files frequently deviate from the spec by omitting closing tags;
the parser repairs such documents before extraction.
*/
package ofx
