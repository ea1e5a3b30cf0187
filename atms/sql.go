package atms

func queryToCreateAtmsTable() string {
	sqlQuery := `
	CREATE TABLE IF NOT EXISTS Atms (
		seq            BIGINT       NOT NULL AUTO_INCREMENT,
		id             VARCHAR(64)  NOT NULL,
		name           VARCHAR(255) NOT NULL,
		address        VARCHAR(512) NOT NULL DEFAULT '',
		branch_code    VARCHAR(64)  NOT NULL DEFAULT '',
		branch_manager VARCHAR(255) NOT NULL DEFAULT '',
		latitude       DOUBLE       NOT NULL,
		longitude      DOUBLE       NOT NULL,
		phone          VARCHAR(64)  NOT NULL DEFAULT '',
		working_hours  VARCHAR(128) NOT NULL DEFAULT '',
		PRIMARY KEY (seq),
		UNIQUE KEY uq_atms_id (id)
	);
	`
	return sqlQuery
}

func queryToGetAllAtms() string {
	sqlQuery := `
	SELECT
		id, name, address, branch_code, branch_manager, latitude, longitude, phone, working_hours
	FROM
		Atms
	ORDER BY
		seq;
	`
	return sqlQuery
}

func queryToGetAtmById() string {
	sqlQuery := `
	SELECT
		id, name, address, branch_code, branch_manager, latitude, longitude, phone, working_hours
	FROM
		Atms
	WHERE
		id = ?;
	`
	return sqlQuery
}

func queryToCheckIfAtmExists() string {
	sqlQuery := `
	SELECT
		COUNT(*)
	FROM
		Atms
	WHERE
		id = ?;
	`
	return sqlQuery
}

func queryToAddAtm() string {
	sqlQuery := `
				INSERT INTO Atms
					(id, name, address, branch_code, branch_manager, latitude, longitude, phone, working_hours)
				VALUES
					(?, ?, ?, ?, ?, ?, ?, ?, ?);
				`
	return sqlQuery
}
