// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, advertisements, pagination and the
// validation rules that apply to them, independent of any specific
// infrastructure or delivery mechanism.
package domain
