// Package todo defines the task record, its storage encoding, and validation.
//
// The task file is a top-level JSON array of records:
//
//	[
//	    {
//	        "created_at": "2025-10-04",
//	        "description": "",
//	        "due": null,
//	        "id": 1,
//	        "priority": "médio",
//	        "status": "aberto",
//	        "tags": ["casa"],
//	        "title": "Buy milk"
//	    }
//	]
//
// # Decoding
//
// FromRecord requires id, title, and created_at. Missing description, due,
// priority, and status take their defaults; missing or null tags become an
// empty list. Unknown priority or status values are rejected with
// ErrMalformedRecord rather than carried into the model.
//
// # Priority Values
//
//   - "alto": high
//   - "médio": medium (default)
//   - "baixo": low
//
// # Status Values
//
//   - "aberto": open (default)
//   - "feito": done
//
// Status only moves from aberto to feito.
//
// # Validation
//
// ValidateCollection checks raw file contents against the embedded JSON
// Schema (draft 2020-12) and reports decode failures and duplicate ids. It is
// used by diagnostics; normal loading never fails on bad contents.
package todo
