package eligibility

// Triagem pré-doação. As perguntas condicionais ao gênero viveram num único
// documento com campos anuláveis no sistema antigo; aqui cada variante tem
// seu próprio tipo e o compilador garante que só os campos aplicáveis
// existem.

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// CommonAnswers valem para qualquer doador. true = resposta que desqualifica,
// exceto onde indicado.
type CommonAnswers struct {
	AgeInRange       bool `json:"age_in_range"`       // 16–69 anos (não desqualifica: exige true)
	FirstDonationU60 bool `json:"first_donation_u60"` // primeira doação antes dos 60 (exige true)
	WeightOK         bool `json:"weight_ok"`          // ≥ 50kg (exige true)
	Healthy          bool `json:"healthy"`            // exige true

	RecentSymptoms   bool `json:"recent_symptoms"`
	ChronicDiseases  bool `json:"chronic_diseases"`
	Medications      bool `json:"medications"`
	RecentProcedures bool `json:"recent_procedures"`
	DrugUse          bool `json:"drug_use"`
	MultiplePartners bool `json:"multiple_partners"`
	TattooOrPiercing bool `json:"tattoo_or_piercing"` // últimos 12 meses
	RecentCovidVac   bool `json:"recent_covid_vaccine"`
	YellowFeverVac   bool `json:"recent_yellow_fever_vaccine"`
	TravelToRiskArea bool `json:"travel_to_risk_area"`
}

type MaleAnswers struct {
	DonatedLast60Days bool `json:"donated_last_60_days"`
}

type FemaleAnswers struct {
	Pregnant          bool `json:"pregnant"`
	RecentChildbirth  bool `json:"recent_childbirth"`
	DonatedLast90Days bool `json:"donated_last_90_days"`
}

// Questionnaire é a variante etiquetada: exatamente um dos ponteiros de
// gênero está preenchido, conforme Gender.
type Questionnaire struct {
	Gender Gender         `json:"gender"`
	Common CommonAnswers  `json:"common"`
	Male   *MaleAnswers   `json:"male,omitempty"`
	Female *FemaleAnswers `json:"female,omitempty"`
}

type Verdict struct {
	Eligible bool
	Message  string
}

// Evaluate aplica as regras de triagem e devolve o veredito com a primeira
// regra violada.
func (q Questionnaire) Evaluate() Verdict {
	switch q.Gender {
	case GenderMale:
		if q.Male == nil {
			return failed("questionario_incompleto")
		}
	case GenderFemale:
		if q.Female == nil {
			return failed("questionario_incompleto")
		}
	default:
		return failed("genero_invalido")
	}

	if !q.Common.AgeInRange {
		return failed("idade_fora_da_faixa")
	}
	if !q.Common.FirstDonationU60 {
		return failed("primeira_doacao_apos_60")
	}
	if !q.Common.WeightOK {
		return failed("peso_insuficiente")
	}
	if !q.Common.Healthy {
		return failed("estado_de_saude")
	}

	for _, rule := range []struct {
		hit bool
		msg string
	}{
		{q.Common.RecentSymptoms, "sintomas_recentes"},
		{q.Common.ChronicDiseases, "doencas_cronicas"},
		{q.Common.Medications, "medicamentos_em_uso"},
		{q.Common.RecentProcedures, "procedimentos_recentes"},
		{q.Common.DrugUse, "uso_de_drogas"},
		{q.Common.MultiplePartners, "multiplos_parceiros"},
		{q.Common.TattooOrPiercing, "tatuagem_ou_piercing_recente"},
		{q.Common.RecentCovidVac, "vacina_covid_recente"},
		{q.Common.YellowFeverVac, "vacina_febre_amarela_recente"},
		{q.Common.TravelToRiskArea, "viagem_area_de_risco"},
	} {
		if rule.hit {
			return failed(rule.msg)
		}
	}

	if q.Male != nil && q.Male.DonatedLast60Days {
		return failed("doacao_ha_menos_de_60_dias")
	}
	if q.Female != nil {
		if q.Female.Pregnant {
			return failed("gravidez")
		}
		if q.Female.RecentChildbirth {
			return failed("parto_recente")
		}
		if q.Female.DonatedLast90Days {
			return failed("doacao_ha_menos_de_90_dias")
		}
	}

	return Verdict{Eligible: true, Message: "apto_para_doacao"}
}

func failed(msg string) Verdict {
	return Verdict{Eligible: false, Message: msg}
}
