package classify

import "github.com/okian/delfos/internal/domain/aptitude"

// DefaultRules returns the built-in rule list. Several patterns overlap
// ("problem", "management", "visual"); the earlier rule takes the element.
func DefaultRules() []Rule {
	return []Rule{
		{`reasoning|logic|problem|analysis|analytical|deductive|inductive`, aptitude.Logica},
		{`mathemat|number facility|quantitative`, aptitude.Matematica},
		{`written comprehension|reading|comprehension|text|interpretation`, aptitude.Interpretacao},
		{`written expression|writing|composition`, aptitude.Escrita},
		{`spatial|visualization|visual|orient`, aptitude.Espacial},
		{`attention|detail|focus|order|selective attention`, aptitude.Detalhes},
		{`memory|memorization|recall`, aptitude.Memoria},
		{`speed|processing speed|perceptual speed|reaction time`, aptitude.Velocidade},
		{`problem solving|solve|troubleshoot|critical thinking`, aptitude.Problemas},
		{`creativ|originality|innovation|fluency of ideas`, aptitude.Criatividade},
		{`finger|manual dexterity|arm-hand steadiness|wrist-finger speed|fine motor`, aptitude.CoordFina},
		{`artistic|design|drawing|graphic|fine arts|aesthetics|visual arts`, aptitude.Artistica},
		{`music|rhythm|auditory attention|hearing sensitivity|sound|musical|audio`, aptitude.Musica},
		{`physical|stamina|fitness|body coordination|gross body|athletic|sports|strength|endurance`, aptitude.Esportes},
		{`nature|biology|environment|ecology|realistic|natural|outdoor|plant|animal`, aptitude.Natureza},
		{`technology|computers|programming|software|systems analysis|technical|digital|hardware`, aptitude.Tecnologia},
		{`organizing|planning|time management|coordination|systematization`, aptitude.Organizacao},
		{`leadership|influencing|persuasion|supervision|management|guidance`, aptitude.Lideranca},
		{`teaching|instructing|training|education|pedagogy|mentoring`, aptitude.Didatica},
		{`initiative|entrepreneur|starting|enterprising|independence|self-directed|business|sales|marketing|management|administration|negotiat|supervis|lead|direct`, aptitude.Empreendedorismo},
		{`curious|learning|updating knowledge|research|investigative|exploration|inquisitive`, aptitude.Curiosidade},
		{`speaking|oral expression|communication|oral comprehension|social|interpersonal|verbal`, aptitude.Comunicacao},
	}
}
