package database

import (
	"github.com/rpupo63/student-directory-backend/models"
	"github.com/rs/zerolog/log"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// Seed populates lookup tables and a handful of demo accounts on first
// start. Each block is skipped when its table already has rows, so
// calling Seed repeatedly is harmless.
func (d Database) Seed() error {
	if err := d.seedInstitutes(); err != nil {
		return err
	}
	if err := d.seedSkills(); err != nil {
		return err
	}
	if err := d.seedTools(); err != nil {
		return err
	}
	return d.seedDemoUsers()
}

func (d Database) seedInstitutes() error {
	count, err := d.instituteRepo.Count()
	if err != nil || count > 0 {
		return err
	}
	log.Info().Msg("Seeding institutes...")
	names := []string{
		"Saintgits College of Engineering",
		"IIT Bombay",
		"NIT Calicut",
		"College of Engineering, Trivandrum (CET)",
	}
	for _, name := range names {
		if err := d.instituteRepo.Add(&models.Institute{Name: name}); err != nil {
			return err
		}
	}
	return nil
}

func (d Database) seedSkills() error {
	count, err := d.skillRepo.Count()
	if err != nil || count > 0 {
		return err
	}
	log.Info().Msg("Seeding skills...")
	names := []string{
		"Python", "JavaScript", "Java", "C++", "HTML", "CSS",
		"React", "Node.js", "Flask", "Django", "MySQL", "MongoDB",
		"Data Analysis", "Machine Learning", "Graphic Design", "UI/UX Design",
	}
	for _, name := range names {
		if err := d.skillRepo.Add(&models.Skill{Name: name}); err != nil {
			return err
		}
	}
	return nil
}

func (d Database) seedTools() error {
	count, err := d.toolRepo.Count()
	if err != nil || count > 0 {
		return err
	}
	log.Info().Msg("Seeding tools...")
	names := []string{
		"Git", "VS Code", "Docker", "Figma", "Adobe XD", "Jira",
		"Blender", "Arduino", "Raspberry Pi",
	}
	for _, name := range names {
		if err := d.toolRepo.Add(&models.Tool{Name: name}); err != nil {
			return err
		}
	}
	return nil
}

func (d Database) seedDemoUsers() error {
	existing, err := d.userRepo.FindByUsername("lakshmi")
	if err != nil || existing != nil {
		return err
	}
	log.Info().Msg("Seeding demo users with password '123'...")

	defaultInstitute, err := d.instituteRepo.FindByName("Saintgits College of Engineering")
	if err != nil {
		return err
	}
	var instituteID *uint
	if defaultInstitute != nil {
		instituteID = &defaultInstitute.ID
	}

	users := []*models.User{
		{Username: "lakshmi", FullName: strPtr("Lakshmi Priya"), Email: "lakshmi@example.com",
			Year: intPtr(2), Branch: strPtr("Computer Science"),
			Bio: strPtr("Student passionate about coding."), InstituteID: instituteID},
		{Username: "miza", FullName: strPtr("Miza Harris"), Phone: strPtr("+919999999991"),
			Email: "miza@example.com", Year: intPtr(2), Branch: strPtr("Electronics"),
			Bio: strPtr("Bio for Miza."), InstituteID: instituteID},
		{Username: "faiz", FullName: strPtr("Mohammed Faiz"), Phone: strPtr("+919999999992"),
			Email: "faiz@example.com", Year: intPtr(3), Branch: strPtr("Computer Science"),
			Bio: strPtr("Bio for Faiz."), InstituteID: instituteID},
		{Username: "nandana", FullName: strPtr("Nandana Mukund"), Phone: strPtr("+919999999993"),
			Email: "nandana@example.com", Year: intPtr(1), Branch: strPtr("Mechanical"),
			Bio: strPtr("Bio for Nandana."), InstituteID: instituteID},
	}
	for _, user := range users {
		if err := user.SetPassword("123"); err != nil {
			return err
		}
		if err := d.userRepo.Add(user); err != nil {
			return err
		}
	}

	lakshmi, err := d.userRepo.FindByUsername("lakshmi")
	if err != nil || lakshmi == nil {
		return err
	}
	for name, rating := range map[string]int{"Python": 4, "HTML": 3} {
		skill, err := d.skillRepo.FindByName(name)
		if err != nil {
			return err
		}
		if skill == nil {
			continue
		}
		err = d.userSkillRepo.Add(&models.UserSkill{
			UserID:  lakshmi.ID,
			SkillID: skill.ID,
			Rating:  rating,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
