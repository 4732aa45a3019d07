package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func healthyCommon() CommonAnswers {
	return CommonAnswers{
		AgeInRange:       true,
		FirstDonationU60: true,
		WeightOK:         true,
		Healthy:          true,
	}
}

func TestQuestionnaire_EligibleMale(t *testing.T) {
	q := Questionnaire{
		Gender: GenderMale,
		Common: healthyCommon(),
		Male:   &MaleAnswers{},
	}

	v := q.Evaluate()

	assert.True(t, v.Eligible)
	assert.Equal(t, "apto_para_doacao", v.Message)
}

func TestQuestionnaire_EligibleFemale(t *testing.T) {
	q := Questionnaire{
		Gender: GenderFemale,
		Common: healthyCommon(),
		Female: &FemaleAnswers{},
	}

	v := q.Evaluate()

	assert.True(t, v.Eligible)
}

func TestQuestionnaire_MissingVariant(t *testing.T) {
	q := Questionnaire{Gender: GenderMale, Common: healthyCommon()}

	v := q.Evaluate()

	assert.False(t, v.Eligible)
	assert.Equal(t, "questionario_incompleto", v.Message)
}

func TestQuestionnaire_UnknownGender(t *testing.T) {
	q := Questionnaire{Gender: "other", Common: healthyCommon()}

	v := q.Evaluate()

	assert.False(t, v.Eligible)
	assert.Equal(t, "genero_invalido", v.Message)
}

func TestQuestionnaire_CommonDisqualifiers(t *testing.T) {
	base := healthyCommon()
	base.TattooOrPiercing = true

	q := Questionnaire{Gender: GenderMale, Common: base, Male: &MaleAnswers{}}

	v := q.Evaluate()

	assert.False(t, v.Eligible)
	assert.Equal(t, "tatuagem_ou_piercing_recente", v.Message)
}

func TestQuestionnaire_RequiredAnswersMissing(t *testing.T) {
	common := healthyCommon()
	common.WeightOK = false

	q := Questionnaire{Gender: GenderFemale, Common: common, Female: &FemaleAnswers{}}

	v := q.Evaluate()

	assert.False(t, v.Eligible)
	assert.Equal(t, "peso_insuficiente", v.Message)
}

func TestQuestionnaire_GenderSpecificRules(t *testing.T) {
	male := Questionnaire{
		Gender: GenderMale,
		Common: healthyCommon(),
		Male:   &MaleAnswers{DonatedLast60Days: true},
	}
	assert.Equal(t, "doacao_ha_menos_de_60_dias", male.Evaluate().Message)

	female := Questionnaire{
		Gender: GenderFemale,
		Common: healthyCommon(),
		Female: &FemaleAnswers{Pregnant: true},
	}
	assert.Equal(t, "gravidez", female.Evaluate().Message)
}
