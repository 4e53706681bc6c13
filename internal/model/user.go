package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column in the database.  The json
// tags are omitted here because these structs are used internally by the
// repository layer; handlers define separate response types that never
// include the password hash.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password, never the raw password.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Username     string    // users.username
    PasswordHash string    // users.password_hash
    CreatedAt    time.Time // users.created_at
}
