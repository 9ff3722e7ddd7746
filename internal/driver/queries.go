package driver

const (
	SaveConceptNodeQuery = `
		MERGE (n:Concept {name: $name, group_id: $group_id})
		ON CREATE SET n.uuid = $uuid, n.created_at = $created_at
		RETURN n.name AS name
	`

	SaveCausalLinkQuery = `
		MATCH (head:Concept {name: $head_node, group_id: $group_id})
		MATCH (tail:Concept {name: $tail_node, group_id: $group_id})
		MERGE (head)-[e:CAUSES {relation: $relation}]->(tail)
		SET e.group_id = $group_id,
			e.strength = $strength,
			e.polarity = $polarity,
			e.support_count = $support_count,
			e.time_granularity = $time_granularity,
			e.reasoning_tags = $reasoning_tags,
			e.matrix_boost = $matrix_boost,
			e.updated_at = $updated_at
		RETURN e.relation AS relation
	`

	GetGroupLinksQuery = `
		MATCH (head:Concept {group_id: $group_id})-[e:CAUSES]->(tail:Concept {group_id: $group_id})
		RETURN head.name AS head_node,
			e.relation AS relation,
			tail.name AS tail_node,
			e.strength AS strength,
			e.polarity AS polarity,
			e.support_count AS support_count,
			e.time_granularity AS time_granularity,
			e.reasoning_tags AS reasoning_tags,
			e.matrix_boost AS matrix_boost
		ORDER BY e.strength DESC, head.name, tail.name
	`

	DeleteGroupQuery = `
		MATCH (n:Concept {group_id: $group_id})
		DETACH DELETE n
	`
)
