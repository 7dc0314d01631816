package factors

// Built-in factor tables. Yields follow USDA FNDDS cooking-yield figures for
// the common Indonesian preparations; retentions follow the USDA nutrient
// retention table. Everything not listed resolves to identity.
var defaultFactors = map[Key]float64{
	{Method: "SEGAR", Axis: AxisWeight}:    1.0,
	{Method: "DIREBUS", Axis: AxisWeight}:  1.0,
	{Method: "TUMIS", Axis: AxisWeight}:    0.90,
	{Method: "DIGORENG", Axis: AxisWeight}: 0.85,
	{Method: "PANGGANG", Axis: AxisWeight}: 0.85,

	{Method: "SEGAR", Axis: AxisAll}: 1.0,

	{Method: "DIREBUS", Axis: "PROTEIN"}:  0.98,
	{Method: "DIREBUS", Axis: "SERAT"}:    0.95,
	{Method: "DIREBUS", Axis: "VIT_C"}:    0.60,
	{Method: "DIREBUS", Axis: "VIT A RE"}: 0.90,
	{Method: "DIREBUS", Axis: "VIT RAE"}:  0.90,
	{Method: "DIREBUS", Axis: "KALIUM"}:   0.90,
	{Method: "DIREBUS", Axis: "KALSIUM"}:  0.98,
	{Method: "DIREBUS", Axis: "BESI"}:     0.98,
	{Method: "DIREBUS", Axis: "SENG"}:     0.98,

	{Method: "TUMIS", Axis: "PROTEIN"}:  0.97,
	{Method: "TUMIS", Axis: "SERAT"}:    0.95,
	{Method: "TUMIS", Axis: "VIT_C"}:    0.70,
	{Method: "TUMIS", Axis: "VIT A RE"}: 0.90,
	{Method: "TUMIS", Axis: "VIT RAE"}:  0.90,
	{Method: "TUMIS", Axis: "KALIUM"}:   0.95,

	{Method: "DIGORENG", Axis: "PROTEIN"}:  0.95,
	{Method: "DIGORENG", Axis: "SERAT"}:    0.90,
	{Method: "DIGORENG", Axis: "VIT_C"}:    0.65,
	{Method: "DIGORENG", Axis: "VIT A RE"}: 0.85,
	{Method: "DIGORENG", Axis: "VIT RAE"}:  0.85,

	{Method: "PANGGANG", Axis: "PROTEIN"}:  0.97,
	{Method: "PANGGANG", Axis: "SERAT"}:    0.95,
	{Method: "PANGGANG", Axis: "VIT_C"}:    0.70,
	{Method: "PANGGANG", Axis: "VIT A RE"}: 0.88,
	{Method: "PANGGANG", Axis: "VIT RAE"}:  0.88,
}
