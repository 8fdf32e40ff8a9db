package dune

// Canonical skill names
const (
	SkillBattle      = "Battle"
	SkillCommunicate = "Communicate"
	SkillDiscipline  = "Discipline"
	SkillMove        = "Move"
	SkillUnderstand  = "Understand"
)

// Canonical drive names
const (
	DriveDuty    = "Duty"
	DriveFaith   = "Faith"
	DriveJustice = "Justice"
	DrivePower   = "Power"
	DriveTruth   = "Truth"
)

// Value bounds
const (
	// DefaultSkillValue is assigned to a skill when no value is given
	DefaultSkillValue = 4

	// MinSkillValue and MaxSkillValue bound skill ratings
	MinSkillValue = 4
	MaxSkillValue = 8

	// MinDriveValue and MaxDriveValue bound drive ratings
	MinDriveValue = 4
	MaxDriveValue = 8
)

// SkillNames returns the canonical skill names in rulebook order.
func SkillNames() []string {
	return []string{SkillBattle, SkillCommunicate, SkillDiscipline, SkillMove, SkillUnderstand}
}

// DriveNames returns the canonical drive names in rulebook order.
func DriveNames() []string {
	return []string{DriveDuty, DriveFaith, DriveJustice, DrivePower, DriveTruth}
}

// IsCanonicalSkill reports whether name is one of the five skills.
func IsCanonicalSkill(name string) bool {
	switch name {
	case SkillBattle, SkillCommunicate, SkillDiscipline, SkillMove, SkillUnderstand:
		return true
	}
	return false
}

// IsCanonicalDrive reports whether name is one of the five drives.
func IsCanonicalDrive(name string) bool {
	switch name {
	case DriveDuty, DriveFaith, DriveJustice, DrivePower, DriveTruth:
		return true
	}
	return false
}
