package model

import "time"

// Staff is a hotel employee who can sign in and operate the API.
// FailedAttempts and Blocked implement the account lockout policy:
// three consecutive bad passwords block the account until an
// administrator unblocks it.
//
// Fields:
//  ID             – primary key identifier.
//  FirstName      – given name.
//  LastName       – family name.
//  Phone          – unique phone number.
//  Email          – unique email address.
//  Login          – unique sign-in name.
//  PasswordHash   – bcrypt hash of the password.
//  PositionID     – reference to the staff position; nullable.
//  CreatedAt      – account creation timestamp.
//  FailedAttempts – consecutive failed login attempts.
//  Blocked        – true when the account is locked out.
type Staff struct {
    ID             uint64    // staff.id
    FirstName      string    // staff.first_name
    LastName       string    // staff.last_name
    Phone          string    // staff.phone (unique)
    Email          string    // staff.email (unique)
    Login          string    // staff.login (unique)
    PasswordHash   string    // staff.password_hash
    PositionID     *uint64   // staff.position_id (nullable)
    CreatedAt      time.Time // staff.created_at
    FailedAttempts int32     // staff.failed_attempts
    Blocked        bool      // staff.blocked
}

// Position is a staff job title (receptionist, manager, ...).
type Position struct {
    ID   uint64 // positions.id
    Name string // positions.position_name (unique)
}
