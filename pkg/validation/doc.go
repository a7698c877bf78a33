// Package validation checks decoded request bodies with go-playground
// validator and reports failures as Conduit field errors.
//
// Field names come from json tags, so a failing `user.email` is reported
// under "email". A missing body wrapper such as {"user": ...} is reported
// as {"body": ["is invalid"]}.
package validation
