package matching

import "github.com/jonathan/resume-portfolio/internal/types"

// applyTruthfulnessGuard overwrites identity, contact, and link fields of an
// improved resume with the source resume's values verbatim. The model is only
// ever allowed to modify narrative fields (title, summary, experience,
// projects, skills, education); everything a reader could use to contact or
// identify the candidate comes from the source document.
func applyTruthfulnessGuard(improved types.Resume, source types.Resume) types.Resume {
	if source.Personal.Name != "" {
		improved.Personal.Name = source.Personal.Name
	}
	improved.Personal.Photo = source.Personal.Photo
	improved.Personal.PrimaryPhoto = source.Personal.PrimaryPhoto
	improved.Personal.SecondaryPhoto = source.Personal.SecondaryPhoto
	improved.Contact = source.Contact
	improved.Links = source.Links
	return improved
}
